package words

// starterWords is the quick-start seed set for fresh libraries. All of
// them begin NEW and immediately due.
var starterWords = []CreateWordInput{
	{
		Term:       "Ephemeral",
		Definition: "Lasting for a very short time.",
		Example:    "The beauty of a sunset is ephemeral, but its memory can last forever.",
		IPA:        "ɪˈfɛmərəl",
		Tags:       []string{"Academic"},
		ImageURL:   "https://picsum.photos/seed/ephemeral/400/300",
	},
	{
		Term:       "Serendipity",
		Definition: "The occurrence and development of events by chance in a happy or beneficial way.",
		Example:    "It was pure serendipity that I met my best friend on that rainy afternoon.",
		IPA:        "ˌsɛrənˈdɪpɪti",
		Tags:       []string{"Positive"},
		ImageURL:   "https://picsum.photos/seed/serendipity/400/300",
	},
	{
		Term:       "Meticulous",
		Definition: "Showing great attention to detail; very careful and precise.",
		Example:    "He was meticulous about keeping his workplace clean and organized.",
		IPA:        "məˈtɪkjələs",
		Tags:       []string{"Work"},
		ImageURL:   "https://picsum.photos/seed/meticulous/400/300",
	},
}
