package replies

import (
	"fmt"
	"strings"

	"github.com/Desarso/toolguide/models"
)

// ConsensusSite is linked under every Consensus answer.
const ConsensusSite = "https://consensus.app"

var (
	consensusQuery = text{
		tr: "Consensus.app %s yapay zeka araştırma aracı akademik makaleler",
		en: "Consensus.app %s AI research tool academic papers",
	}
	consensusPrompt = text{
		tr: "Aşağıdaki arama sonuçlarını kullanarak Consensus.app hakkındaki şu soruyu Türkçe olarak 3-4 cümleyle yanıtla: %s\n\nArama sonuçları:\n%s",
		en: "Using the search results below, answer this question about Consensus.app in English in 3-4 sentences: %s\n\nSearch results:\n%s",
	}
	officialSite = text{tr: "🌐 **Resmi site:** ", en: "🌐 **Official site:** "}
	noSpecific   = text{
		tr: "Bu konuda spesifik bilgi bulamadım. Daha fazla bilgi için siteyi ziyaret edebilirsiniz.\n\n🌐 **Ziyaret edin:** ",
		en: "I couldn't find specific information about that. You can visit the site for more details.\n\n🌐 **Visit:** ",
	}
)

// ConsensusQuery is the web search query for a question about Consensus.
func ConsensusQuery(question string, lang models.Language) string {
	return fmt.Sprintf(consensusQuery.in(lang), strings.TrimSpace(question))
}

// ConsensusPrompt asks for a short summary of the search hits.
func ConsensusPrompt(question string, results []models.SearchResult, lang models.Language) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n", i+1, r.Title, r.Summary, r.URL)
	}
	return fmt.Sprintf(consensusPrompt.in(lang), strings.TrimSpace(question), b.String())
}

// ConsensusAnswer appends the official site to a summarized answer.
func ConsensusAnswer(answer string, lang models.Language) string {
	return strings.TrimSpace(answer) + "\n\n" + officialSite.in(lang) + ConsensusSite
}

// ConsensusNoSpecific is used when the summary is too short to be useful.
func ConsensusNoSpecific(lang models.Language) string {
	return noSpecific.in(lang) + ConsensusSite
}
