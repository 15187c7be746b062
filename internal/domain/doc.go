// Package domain contains the core entities of the vocabulary
// memorization application: words, user statistics, study history,
// collections and users, together with their validation rules.
package domain
