package htmlview

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/livefir/htmlview/internal/dom"
	"github.com/livefir/htmlview/internal/metrics"
)

type item struct {
	ID   string
	Name string
}

// listGenerator renders one <li> per item and counts its calls
type listGenerator struct {
	calls int
}

func (g *listGenerator) GenerateMarkup(data any) (string, error) {
	g.calls++
	items, ok := data.([]item)
	if !ok {
		if single, isItem := data.(item); isItem {
			items = []item{single}
		} else {
			return "", fmt.Errorf("unexpected %T", data)
		}
	}

	var b strings.Builder
	b.WriteString(`<ul class="results">`)
	for _, it := range items {
		fmt.Fprintf(&b, `<li data-id="%s"><span>%s</span></li>`, it.ID, it.Name)
	}
	b.WriteString(`</ul>`)
	return b.String(), nil
}

type messageGenerator struct {
	listGenerator
}

func (messageGenerator) ErrorMessage() string { return "No recipes found for your query!" }
func (messageGenerator) Message() string      { return "" }

func newView(t *testing.T, gen Generator, opts ...Option) *View {
	t.Helper()
	v, err := New(NewTarget("div", html.Attribute{Key: "class", Val: "container"}), gen, opts...)
	require.NoError(t, err)
	return v
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, &listGenerator{})
	assert.ErrorIs(t, err, ErrNoTarget)

	_, err = New(NewTarget("div"), nil)
	assert.ErrorIs(t, err, ErrNoGenerator)

	_, err = TargetFromNode(&html.Node{Type: html.TextNode})
	assert.ErrorIs(t, err, dom.ErrNotElement)
}

func TestRender_Attach(t *testing.T) {
	gen := &listGenerator{}
	v := newView(t, gen)

	markup, err := v.Render([]item{{"1", "Pizza"}, {"2", "Pasta"}}, true)
	require.NoError(t, err)

	assert.Empty(t, markup)
	assert.Equal(t, `<ul class="results"><li data-id="1"><span>Pizza</span></li><li data-id="2"><span>Pasta</span></li></ul>`, v.Target().InnerHTML())
	assert.Equal(t, []item{{"1", "Pizza"}, {"2", "Pasta"}}, v.Data())
}

func TestRender_Idempotent(t *testing.T) {
	v := newView(t, &listGenerator{})
	data := []item{{"1", "Pizza"}}

	require.NoError(t, v.Attach(data))
	once := dom.Clone(v.Target().Node())

	require.NoError(t, v.Attach(data))
	assert.True(t, dom.IsEqualNode(once, v.Target().Node()))
}

func TestRender_EmptyDataShowsError(t *testing.T) {
	var nilItem *item
	var nilSlice []item

	tests := []struct {
		name string
		data any
	}{
		{"nil", nil},
		{"nil pointer", nilItem},
		{"nil slice", nilSlice},
		{"empty slice", []item{}},
		{"empty map", map[string]item{}},
		{"empty array", [0]item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &listGenerator{}
			v := newView(t, gen)

			markup, err := v.Render(tt.data, true)
			require.NoError(t, err)

			assert.Empty(t, markup)
			assert.Zero(t, gen.calls, "generator must not be called")
			errs := v.Target().Find("div.error p")
			require.Len(t, errs, 1)
			assert.Equal(t, DefaultErrorMessage, dom.TextContent(errs[0]))
		})
	}
}

func TestRender_EmptyDataUsesGeneratorMessage(t *testing.T) {
	v := newView(t, &messageGenerator{})

	_, err := v.Render([]item{}, false)
	require.NoError(t, err)

	errs := v.Target().Find("div.error p")
	require.Len(t, errs, 1)
	assert.Equal(t, "No recipes found for your query!", dom.TextContent(errs[0]))
}

func TestRender_NoAttach(t *testing.T) {
	target, err := TargetFromHTML("div", `<p class="keep">existing</p>`)
	require.NoError(t, err)
	before := target.InnerHTML()
	node := target.Elements()[0]

	v, err := New(target, &listGenerator{})
	require.NoError(t, err)

	markup, err := v.Render(item{"7", "Soup"}, false)
	require.NoError(t, err)

	assert.Equal(t, `<ul class="results"><li data-id="7"><span>Soup</span></li></ul>`, markup)
	assert.Equal(t, before, target.InnerHTML())
	assert.Same(t, node, target.Elements()[0])
}

func TestRender_GeneratorError(t *testing.T) {
	collector := metrics.NewCollector()
	failure := errors.New("template exploded")
	gen := GeneratorFunc(func(any) (string, error) { return "", failure })

	target, err := TargetFromHTML("div", `<p>old</p>`)
	require.NoError(t, err)
	v, err := New(target, gen, WithMetrics(collector))
	require.NoError(t, err)

	_, err = v.Render(item{"1", "x"}, true)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, `<p>old</p>`, target.InnerHTML())

	assert.ErrorIs(t, v.Update(item{"1", "x"}), failure)
	assert.Equal(t, int64(2), collector.GetMetrics().GenerationErrors)
}

func TestUpdate_TextSync(t *testing.T) {
	v := newView(t, &listGenerator{})
	require.NoError(t, v.Attach([]item{{"1", "A"}}))
	span := v.Target().Find("span")[0]

	require.NoError(t, v.Update([]item{{"1", "B"}}))

	assert.Equal(t, "B", dom.TextContent(span))
	assert.Same(t, span, v.Target().Find("span")[0], "the live node is patched, not replaced")
	require.Len(t, v.LastPatches(), 1)
	assert.Equal(t, PatchSetText, v.LastPatches()[0].Op)
}

func TestUpdate_AttributeOneWaySync(t *testing.T) {
	target, err := TargetFromHTML("div", `<section data-id="1" data-live="y">same</section>`)
	require.NoError(t, err)
	gen := GeneratorFunc(func(any) (string, error) {
		return `<section data-id="2" data-new="x">same</section>`, nil
	})
	v, err := New(target, gen)
	require.NoError(t, err)

	require.NoError(t, v.Update(struct{}{}))

	section := target.Elements()[0]
	id, _ := dom.GetAttribute(section, "data-id")
	added, _ := dom.GetAttribute(section, "data-new")
	live, ok := dom.GetAttribute(section, "data-live")

	assert.Equal(t, "2", id)
	assert.Equal(t, "x", added)
	assert.True(t, ok)
	assert.Equal(t, "y", live)
}

func TestUpdate_PositionalTruncation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	collector := metrics.NewCollector()
	v := newView(t, &listGenerator{}, WithLogger(zap.New(core)), WithMetrics(collector))

	require.NoError(t, v.Attach([]item{{"1", "a"}, {"2", "b"}, {"3", "c"}}))
	third := v.Target().Find("li")[2]
	before := dom.OuterHTML(third)

	// 7 live elements (ul + 3×(li, span)) against 5 incoming
	require.NoError(t, v.Update([]item{{"1", "x"}, {"2", "y"}}))

	assert.Equal(t, before, dom.OuterHTML(third))
	assert.Len(t, v.Target().Find("li"), 3, "nothing is removed")

	summary := v.LastSummary()
	assert.Equal(t, 7, summary.LiveNodes)
	assert.Equal(t, 5, summary.IncomingNodes)
	assert.Equal(t, 2, summary.Skipped)

	assert.Equal(t, 1, logs.FilterMessage("live and incoming trees differ in shape").Len())
	assert.Equal(t, int64(1), collector.GetMetrics().ShapeMismatches)
}

func TestUpdate_NoChanges(t *testing.T) {
	v := newView(t, &listGenerator{})
	data := []item{{"1", "a"}, {"2", "b"}}
	require.NoError(t, v.Attach(data))
	nodes := v.Target().Elements()

	require.NoError(t, v.Update(data))

	assert.Empty(t, v.LastPatches())
	for i, n := range v.Target().Elements() {
		assert.Same(t, nodes[i], n)
	}
}

func TestStatusTemplates_ReplaceEachOther(t *testing.T) {
	v := newView(t, &listGenerator{}, WithIconsURL("/static/icons.svg"))
	require.NoError(t, v.Attach([]item{{"1", "a"}}))

	require.NoError(t, v.RenderSpinner())
	assert.Len(t, v.Target().Find("div.spinner"), 1)
	assert.Empty(t, v.Target().Find("ul"))
	use := v.Target().Find("use")
	require.Len(t, use, 1)
	href, _ := dom.GetAttribute(use[0], "href")
	assert.Equal(t, "/static/icons.svg#icon-loader", href)

	require.NoError(t, v.RenderError("Something broke"))
	assert.Empty(t, v.Target().Find("div.spinner"))
	require.Len(t, v.Target().Find("div.error"), 1)
	assert.Equal(t, "Something broke", dom.TextContent(v.Target().Find("div.error p")[0]))

	require.NoError(t, v.RenderMessage(""))
	assert.Empty(t, v.Target().Find("div.error"))
	require.Len(t, v.Target().Find("div.message"), 1)
	assert.Equal(t, DefaultMessage, dom.TextContent(v.Target().Find("div.message p")[0]))
	href, _ = dom.GetAttribute(v.Target().Find("use")[0], "href")
	assert.Equal(t, "/static/icons.svg#icon-smile", href)
}

func TestRenderError_EscapesMessage(t *testing.T) {
	v := newView(t, &listGenerator{})

	require.NoError(t, v.RenderError(`<script>alert(1)</script>`))

	assert.Empty(t, v.Target().Find("script"))
	assert.Equal(t, `<script>alert(1)</script>`, dom.TextContent(v.Target().Find("div.error p")[0]))
}

func TestConfigMessages(t *testing.T) {
	config := DefaultConfig()
	config.ErrorMessage = "Nothing here"
	config.Message = "Hello"
	v := newView(t, &listGenerator{}, WithConfig(config))

	require.NoError(t, v.RenderError(""))
	assert.Equal(t, "Nothing here", dom.TextContent(v.Target().Find("div.error p")[0]))

	require.NoError(t, v.RenderMessage(""))
	assert.Equal(t, "Hello", dom.TextContent(v.Target().Find("div.message p")[0]))

	config.Message = "changed later"
	require.NoError(t, v.RenderMessage(""))
	assert.Equal(t, "Hello", dom.TextContent(v.Target().Find("div.message p")[0]), "config is copied")
}

func TestMinify(t *testing.T) {
	gen := GeneratorFunc(func(data any) (string, error) {
		return fmt.Sprintf("<div class=\"card\">\n    <h2>  %s  </h2>\n    <p>body</p>\n</div>\n", data), nil
	})
	v := newView(t, gen, WithMinify(true))

	require.NoError(t, v.Attach("Title"))
	assert.NotContains(t, v.Target().InnerHTML(), "\n")
	assert.Len(t, v.Target().Elements(), 3)

	require.NoError(t, v.Update("Other"))
	assert.Contains(t, dom.TextContent(v.Target().Find("h2")[0]), "Other")
}

func TestMetricsRecorded(t *testing.T) {
	collector := metrics.NewCollector()
	v := newView(t, &listGenerator{}, WithMetrics(collector))

	_, err := v.Render([]item{{"1", "a"}}, false)
	require.NoError(t, err)
	require.NoError(t, v.Attach([]item{{"1", "a"}}))
	require.NoError(t, v.Update([]item{{"1", "b"}}))
	_, err = v.Render(nil, true)
	require.NoError(t, err)
	require.NoError(t, v.RenderSpinner())
	require.NoError(t, v.RenderMessage("hi"))

	m := collector.GetMetrics()
	assert.Equal(t, int64(1), m.Renders)
	assert.Equal(t, int64(1), m.MarkupReturned)
	assert.Equal(t, int64(1), m.Updates)
	assert.Equal(t, int64(1), m.TextPatches)
	assert.Equal(t, int64(1), m.EmptyRenders)
	assert.Equal(t, int64(1), m.ErrorRenders)
	assert.Equal(t, int64(1), m.SpinnerRenders)
	assert.Equal(t, int64(1), m.MessageRenders)
	assert.Equal(t, int64(3), collector.GetCustomCounters()["*htmlview.listGenerator"])
}

func TestEmptyRenderLogsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	v := newView(t, &listGenerator{}, WithLogger(zap.New(core)))

	_, err := v.Render(nil, true)
	require.NoError(t, err)

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "no data to render, showing error state", entries[0].Message)
}

func TestUpdate_MinifyKeepsEmptyAttributes(t *testing.T) {
	gen := GeneratorFunc(func(data any) (string, error) {
		return fmt.Sprintf(`<p class="%[1]s" data-x="%[1]s" id="%[1]s">text</p>`, data), nil
	})
	v := newView(t, gen, WithMinify(true))

	require.NoError(t, v.Attach("on"))
	require.NoError(t, v.Update(""))

	p := v.Target().Find("p")[0]
	for _, key := range []string{"class", "data-x", "id"} {
		val, ok := dom.GetAttribute(p, key)
		assert.True(t, ok, key)
		assert.Empty(t, val, key)
	}
	assert.Len(t, v.LastPatches(), 3)
}

func TestReplace_ClearsLastUpdateReport(t *testing.T) {
	v := newView(t, &listGenerator{})
	require.NoError(t, v.Attach([]item{{"1", "a"}, {"2", "b"}}))
	require.NoError(t, v.Update([]item{{"1", "x"}}))
	require.NotEmpty(t, v.LastPatches())
	require.True(t, v.LastSummary().Mismatched())

	require.NoError(t, v.Attach([]item{{"1", "a"}}))
	assert.Empty(t, v.LastPatches())
	assert.Equal(t, Summary{}, v.LastSummary())

	require.NoError(t, v.Update([]item{{"1", "y"}}))
	require.NotEmpty(t, v.LastPatches())

	require.NoError(t, v.RenderSpinner())
	assert.Empty(t, v.LastPatches())
	assert.Equal(t, Summary{}, v.LastSummary())
}

func TestRender_DebugLogCountsElements(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	v := newView(t, &listGenerator{}, WithLogger(zap.New(core)))

	require.NoError(t, v.Attach([]item{{"1", "a"}}))

	entries := logs.FilterMessage("view rendered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["elements"])

	quiet, quietLogs := observer.New(zapcore.InfoLevel)
	v = newView(t, &listGenerator{}, WithLogger(zap.New(quiet)))
	require.NoError(t, v.Attach([]item{{"1", "a"}}))
	assert.Zero(t, quietLogs.FilterMessage("view rendered").Len())
}
