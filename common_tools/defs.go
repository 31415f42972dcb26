package common_tools

// SimplifiedResultData is the part of a Brave Search web response the searcher reads.
type SimplifiedResultData struct {
	Query SimplifiedQueryInfo        `json:"query"`
	News  SimplifiedNewsResults      `json:"news"`
	Web   SimplifiedWebSearchResults `json:"web"`
}

type SimplifiedQueryInfo struct {
	Original string `json:"original"`
	Country  string `json:"country"`
}

type SimplifiedNewsResults struct {
	Results []SimplifiedNewsArticle `json:"results"`
}

type SimplifiedNewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age,omitempty"` // e.g. "9 hours ago"
}

type SimplifiedWebSearchResults struct {
	Results []SimplifiedWebResult `json:"results"`
}

// SimplifiedWebResult is a single organic web result.
type SimplifiedWebResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age,omitempty"`
}
