package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dsrosen/htmlreader/internal/diagnostics"
	"github.com/dsrosen/htmlreader/internal/dom"
	"github.com/dsrosen/htmlreader/internal/parser"
)

func mustParse(t *testing.T, p *parser.Parser, input string) *dom.Document {
	t.Helper()
	doc, err := p.Parse(input)
	require.NoError(t, err)
	return doc
}

// shape is a plain, exported-field mirror of a dom.Node subtree, used to
// diff parsed structure with cmp without reaching into dom.Node's
// unexported fields.
type shape struct {
	Name     string
	Text     string
	Children []shape
}

func treeShape(n *dom.Node) shape {
	s := shape{Name: n.Name(), Text: n.Value()}
	for _, c := range n.Children() {
		s.Children = append(s.Children, treeShape(c))
	}
	return s
}

func TestSimpleNesting(t *testing.T) {
	doc := mustParse(t, parser.New(), "<html><body><p>hi</p></body></html>")
	html := doc.FirstChild()
	if html == nil || html.Name() != "HTML" {
		t.Fatalf("root child = %v, want HTML", html)
	}
	body := html.FirstChild()
	if body == nil || body.Name() != "BODY" {
		t.Fatalf("html child = %v, want BODY", body)
	}
	p := body.FirstChild()
	if p == nil || p.Name() != "P" {
		t.Fatalf("body child = %v, want P", p)
	}
	if got := p.TextContent(); got != "hi" {
		t.Errorf("TextContent() = %q, want %q", got, "hi")
	}
}

func TestVoidElementDoesNotNestFollowingSiblings(t *testing.T) {
	doc := mustParse(t, parser.New(), "<p>x<br>y</p>")
	p := doc.FirstChild()
	if p.Name() != "P" {
		t.Fatalf("root child = %s, want P", p.Name())
	}
	children := p.Children()
	if len(children) != 3 {
		t.Fatalf("p has %d children, want 3 (x, br, y)", len(children))
	}
	if children[0].TextContent() != "x" {
		t.Errorf("first child = %q, want %q", children[0].TextContent(), "x")
	}
	if children[1].Name() != "BR" {
		t.Errorf("second child = %s, want BR", children[1].Name())
	}
	if len(children[1].Children()) != 0 {
		t.Error("BR should have no children")
	}
	if children[2].TextContent() != "y" {
		t.Errorf("third child = %q, want %q", children[2].TextContent(), "y")
	}
}

func TestTreeShapeForMixedContent(t *testing.T) {
	doc := mustParse(t, parser.New(), "<ul><li>one</li><li>two<b>!</b></li></ul>")
	got := treeShape(doc.FirstChild())
	want := shape{
		Name: "UL",
		Children: []shape{
			{Name: "LI", Children: []shape{{Text: "one"}}},
			{Name: "LI", Children: []shape{
				{Text: "two"},
				{Name: "B", Children: []shape{{Text: "!"}}},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree shape mismatch (-want +got):\n%s", diff)
	}
}

func TestImplicitLIClose(t *testing.T) {
	doc := mustParse(t, parser.New(), "<ul><li>item1<li>item2</ul>")
	ul := doc.FirstChild()
	items := ul.Children()
	if len(items) != 2 {
		t.Fatalf("ul has %d children, want 2 li elements", len(items))
	}
	for i, li := range items {
		if li.Name() != "LI" {
			t.Errorf("child %d = %s, want LI", i, li.Name())
		}
	}
	if items[0].TextContent() != "item1" || items[1].TextContent() != "item2" {
		t.Errorf("li text = %q, %q", items[0].TextContent(), items[1].TextContent())
	}
}

func TestImplicitPCloseOnLastChild(t *testing.T) {
	doc := mustParse(t, parser.New(), "<div><p>a<p>b</div>")
	div := doc.FirstChild()
	ps := div.Children()
	if len(ps) != 2 || ps[0].Name() != "P" || ps[1].Name() != "P" {
		t.Fatalf("div children = %v, want two P elements", ps)
	}
}

func TestEndElementMismatch(t *testing.T) {
	_, err := parser.New().Parse("<p><b>x</p>")
	require.Error(t, err)
	de, ok := err.(*diagnostics.Error)
	require.True(t, ok, "error type = %T, want *diagnostics.Error", err)
	require.Equal(t, diagnostics.EndElementMismatch, de.Status)
}

func TestUnterminatedElementErrors(t *testing.T) {
	_, err := parser.New().Parse("<p>unterminated")
	require.Error(t, err)
	de, ok := err.(*diagnostics.Error)
	require.True(t, ok, "error type = %T, want *diagnostics.Error", err)
	require.Equal(t, diagnostics.EndElementMismatch, de.Status)
}

func TestCaseCanonicalization(t *testing.T) {
	doc := mustParse(t, parser.New(), "<P CLASS=\"x\">hi</P>")
	p := doc.FirstChild()
	if p.Name() != "P" {
		t.Errorf("Name() = %q, want %q", p.Name(), "P")
	}
	if p.Attribute("CLASS") == nil {
		t.Error("attribute name should be upper-cased to CLASS")
	}
}

func TestSelfClosingTag(t *testing.T) {
	doc := mustParse(t, parser.New(), `<div><img src="x.png"/></div>`)
	div := doc.FirstChild()
	img := div.FirstChild()
	if img.Name() != "IMG" {
		t.Fatalf("child = %s, want IMG", img.Name())
	}
	if len(img.Children()) != 0 {
		t.Error("self-closed IMG should have no children")
	}
}

func TestSelfClosedElementSameNameAsParent(t *testing.T) {
	doc := mustParse(t, parser.New(), `<a id="x"><a id="y"/></a>`)
	outer := doc.FirstChild()
	if outer == nil || outer.Name() != "A" {
		t.Fatalf("root child = %v, want A", outer)
	}
	if got := outer.Attribute("ID").Value(); got != "x" {
		t.Errorf("outer id = %q, want %q", got, "x")
	}
	inner := outer.FirstChild()
	if inner == nil || inner.Name() != "A" {
		t.Fatalf("outer child = %v, want A", inner)
	}
	if got := inner.Attribute("ID").Value(); got != "y" {
		t.Errorf("inner id = %q, want %q", got, "y")
	}
	if len(inner.Children()) != 0 {
		t.Error("self-closed inner A should have no children")
	}
	if len(outer.Children()) != 1 {
		t.Fatalf("outer A has %d children, want 1 (just the self-closed inner A)", len(outer.Children()))
	}
}

func TestCommentsOmittedByDefault(t *testing.T) {
	doc := mustParse(t, parser.New(), "<div><!-- hidden -->x</div>")
	div := doc.FirstChild()
	if len(div.Children()) != 1 {
		t.Fatalf("div has %d children, want 1 (comments dropped by default)", len(div.Children()))
	}
}

func TestCommentsKeptWithOption(t *testing.T) {
	doc := mustParse(t, parser.New(parser.WithComments()), "<div><!-- hidden -->x</div>")
	div := doc.FirstChild()
	comment := div.FindChild(func(n *dom.Node) bool { return n.Type() == dom.Comment })
	if comment == nil {
		t.Fatal("expected a Comment node when WithComments is set")
	}
	if comment.Value() != " hidden " {
		t.Errorf("Value() = %q, want %q", comment.Value(), " hidden ")
	}
}

func TestDoctypeKeptWithOption(t *testing.T) {
	doc := mustParse(t, parser.New(parser.WithDoctype()), "<!DOCTYPE html><html></html>")
	dt := doc.FindChild(func(n *dom.Node) bool { return n.Type() == dom.DocType })
	if dt == nil {
		t.Fatal("expected a DocType node when WithDoctype is set")
	}
	if dt.Value() != "html" {
		t.Errorf("Value() = %q, want %q", dt.Value(), "html")
	}
}

func TestNestedDoctypeGroup(t *testing.T) {
	input := `<!DOCTYPE html [ <!ENTITY foo "bar"> ]><html></html>`
	doc := mustParse(t, parser.New(parser.WithDoctype()), input)
	dt := doc.FindChild(func(n *dom.Node) bool { return n.Type() == dom.DocType })
	if dt == nil {
		t.Fatal("expected a DocType node for a nested internal subset")
	}
}

func TestScriptBodyNotScannedAsMarkup(t *testing.T) {
	doc := mustParse(t, parser.New(), `<script>if (a < b) { x(); }</script>`)
	script := doc.FirstChild()
	if script.Name() != "SCRIPT" {
		t.Fatalf("root child = %s, want SCRIPT", script.Name())
	}
	body := script.FirstChild()
	if body == nil || body.Value() != `if (a < b) { x(); }` {
		t.Errorf("script body = %q", body.Value())
	}
}

func TestQuotedAttributeUnterminatedErrors(t *testing.T) {
	_, err := parser.New().Parse(`<div class="unterminated>x</div>`)
	if err == nil {
		t.Fatal("expected a bad_attribute error for an unterminated quoted value")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Status != diagnostics.BadAttribute {
		t.Fatalf("error = %v, want a BadAttribute diagnostics.Error", err)
	}
}

func TestUnrecognizedTagErrors(t *testing.T) {
	_, err := parser.New().Parse("<1invalid>x</1invalid>")
	if err == nil {
		t.Fatal("expected an unrecognized_tag error")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Status != diagnostics.UnrecognizedTag {
		t.Fatalf("error = %v, want an UnrecognizedTag diagnostics.Error", err)
	}
}

func TestEmptyInputYieldsEmptyDocument(t *testing.T) {
	doc, err := parser.New().Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\"): %v", err)
	}
	if doc.FirstChild() != nil {
		t.Error("empty input should yield a document with no children")
	}
}

func TestIndependentParserInstancesDoNotShareState(t *testing.T) {
	done := make(chan *dom.Document, 2)
	go func() {
		doc, _ := parser.New().Parse("<a>1</a>")
		done <- doc
	}()
	go func() {
		doc, _ := parser.New().Parse("<b>2</b>")
		done <- doc
	}()
	first, second := <-done, <-done
	names := map[string]bool{first.FirstChild().Name(): true, second.FirstChild().Name(): true}
	if !names["A"] || !names["B"] {
		t.Errorf("expected independent parses of A and B, got %v", names)
	}
}
