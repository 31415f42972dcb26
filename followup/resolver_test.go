package followup

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/replies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTools = []catalog.ToolRecord{
	{Name: "Grammarly", AcademicUse: "Dilbilgisi denetimi", Link: "https://grammarly.com"},
	{Name: "DeepL Write", AcademicUse: "Metin iyileştirme", AcademicUseEN: "Text polishing", Link: "https://deepl.com/write"},
	{Name: "QuillBot", AcademicUse: "Yeniden yazma", Link: "https://quillbot.com"},
	{Name: "Scite.ai", AcademicUse: "Atıf analizi", Link: "https://scite.ai"},
	{Name: "Consensus", AcademicUse: "Kanıta dayalı yanıtlar", Link: "https://consensus.app"},
	{Name: "Gamma.app", AcademicUse: "Sunum", Link: "https://gamma.app"},
}

func newTestResolver() *Resolver {
	return NewResolver(testTools, catalog.DefaultCategories(), replies.NewFormatter("")).
		WithLogger(log.New(io.Discard, "", 0))
}

func bot(text string) models.ConversationTurn {
	return models.ConversationTurn{Role: models.RoleAssistant, Text: text}
}

func user(text string) models.ConversationTurn {
	return models.ConversationTurn{Role: models.RoleUser, Text: text}
}

func TestAlternativeNeverReturnsSameTool(t *testing.T) {
	history := []models.ConversationTurn{
		user("dil kontrolü için bir araç önerir misin"),
		bot("Grammarly: Dilbilgisi denetimi\n\n🔗 Detaylar: /tools/grammarly"),
		user("başka ne önerirsin"),
	}
	out, res, ok := newTestResolver().Resolve(history, models.RequestAlternative, models.Turkish)
	require.True(t, ok)
	assert.Equal(t, "DeepL Write", res.Tool.Name)
	assert.Equal(t, "Grammarly", res.Previous)
	assert.Equal(t, "grammar", res.Category)
	assert.True(t, strings.HasPrefix(out, "DeepL Write: Metin iyileştirme"))
	assert.Contains(t, out, "Grammarly için bir alternatiftir")
}

func TestAlternativeDependsOnlyOnLastMention(t *testing.T) {
	history := []models.ConversationTurn{
		bot("Grammarly: ..."),
		user("başka?"),
		bot("DeepL Write: ...\n\nBu, Grammarly için bir alternatiftir."),
		user("başka?"),
	}
	_, res, ok := newTestResolver().Resolve(history, models.RequestAlternative, models.Turkish)
	require.True(t, ok)
	assert.Equal(t, "Grammarly", res.Tool.Name)
	assert.Equal(t, "DeepL Write", res.Previous)

	_, again, ok := newTestResolver().Resolve(history[2:], models.RequestAlternative, models.Turkish)
	require.True(t, ok)
	assert.Equal(t, res.Tool.Name, again.Tool.Name)

	history = append(history, bot("QuillBot: ..."), user("başka?"))
	_, res, ok = newTestResolver().Resolve(history, models.RequestAlternative, models.Turkish)
	require.True(t, ok)
	assert.Equal(t, "Grammarly", res.Tool.Name)
}

func TestAlternativePrefersStructuredTags(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleAssistant, Text: "Bunu deneyebilirsiniz.", Tool: "Scite.ai", Category: "reference"},
	}
	_, res, ok := newTestResolver().Resolve(history, models.RequestAlternative, models.English)
	require.True(t, ok)
	assert.Equal(t, "Consensus", res.Tool.Name)
	assert.Equal(t, "Scite.ai", res.Previous)
}

func TestAlternativeDeclines(t *testing.T) {
	r := newTestResolver()

	_, _, ok := r.Resolve(nil, models.RequestAlternative, models.Turkish)
	assert.False(t, ok)

	_, _, ok = r.Resolve([]models.ConversationTurn{user("Grammarly: is it good?")}, models.RequestAlternative, models.Turkish)
	assert.False(t, ok, "user turns are not recommendations")

	_, _, ok = r.Resolve([]models.ConversationTurn{bot("Bilmiyorum.")}, models.RequestAlternative, models.Turkish)
	assert.False(t, ok)
}

func TestCategoryRequestIgnoresHistory(t *testing.T) {
	history := []models.ConversationTurn{bot("Grammarly: ...")}
	out, res, ok := newTestResolver().Resolve(history, models.RequestReference, models.English)
	require.True(t, ok)
	assert.Equal(t, "Scite.ai", res.Tool.Name)
	assert.Equal(t, "reference", res.Category)
	assert.Empty(t, res.Previous)
	assert.True(t, strings.HasPrefix(out, "Scite.ai: "))

	_, res, ok = newTestResolver().Resolve(nil, models.RequestType("presentation"), models.English)
	require.True(t, ok)
	assert.Equal(t, "Gamma.app", res.Tool.Name)

	_, res, ok = newTestResolver().Resolve(nil, models.RequestGrammar, models.English)
	require.True(t, ok)
	assert.Equal(t, "Grammarly", res.Tool.Name)
}

func TestResolverDeclinesForRetrievalTypes(t *testing.T) {
	history := []models.ConversationTurn{bot("Grammarly: ...")}
	for _, rt := range []models.RequestType{models.RequestPreviousRequest, models.RequestNewTopic, "", "unknown"} {
		_, _, ok := newTestResolver().Resolve(history, rt, models.Turkish)
		assert.False(t, ok, rt)
	}

	// study members are not in this catalog
	_, _, ok := newTestResolver().Resolve(nil, "study", models.Turkish)
	assert.False(t, ok)
}

func TestMentionsUseLongestName(t *testing.T) {
	tools := []catalog.ToolRecord{{Name: "Scholar"}, {Name: "Scholar GPT"}}
	r := NewResolver(tools, catalog.DefaultCategories(), replies.NewFormatter("")).WithLogger(log.New(io.Discard, "", 0))
	mentions := r.Mentions([]models.ConversationTurn{bot("Scholar GPT: ..."), bot("scholar: ...")})
	assert.Equal(t, []Mention{{Tool: "Scholar GPT"}, {Tool: "Scholar"}}, mentions)
}
