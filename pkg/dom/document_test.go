package dom

import "testing"

func TestDocumentTreeOps(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div").(*Node)
	a := d.CreateText("a").(*Node)
	c := d.CreateText("c").(*Node)

	d.AppendChild(d.Root(), div)
	d.AppendChild(div, a)
	d.AppendChild(div, c)

	b := d.CreateText("b").(*Node)
	d.InsertBefore(div, b, c)

	if got := div.TextContent(); got != "abc" {
		t.Errorf("TextContent = %q, want abc", got)
	}

	d.RemoveChild(div, b)
	if got := div.TextContent(); got != "ac" {
		t.Errorf("after remove, TextContent = %q, want ac", got)
	}
	if b.Parent() != nil {
		t.Errorf("removed child still has parent")
	}
}

func TestInsertBeforeMovesExistingChild(t *testing.T) {
	d := NewDocument()
	ul := d.CreateElement("ul").(*Node)
	x := d.CreateText("x").(*Node)
	y := d.CreateText("y").(*Node)
	d.AppendChild(ul, x)
	d.AppendChild(ul, y)

	// Moving y before x must not duplicate it.
	d.InsertBefore(ul, y, x)
	if got := ul.TextContent(); got != "yx" {
		t.Errorf("TextContent = %q, want yx", got)
	}
	if len(ul.Children()) != 2 {
		t.Errorf("children = %d, want 2", len(ul.Children()))
	}
}

func TestOuterHTML(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div").(*Node)
	d.SetProperty(div, "class", "box")
	d.SetProperty(div, "id", "main")
	d.SetProperty(div, "disabled", true)
	d.AppendChild(div, d.CreateText(`<b>&"hi"`))

	want := `<div class="box" disabled id="main">&lt;b&gt;&amp;&#34;hi&#34;</div>`
	if got := div.OuterHTML(); got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}
}

func TestSetPropertyRoutesEvents(t *testing.T) {
	d := NewDocument()
	btn := d.CreateElement("button").(*Node)

	fired := false
	d.SetProperty(btn, "onclick", func() { fired = true })

	if _, ok := btn.Attr("onclick"); ok {
		t.Errorf("handler stored as attribute")
	}
	if !d.DispatchEvent(btn, "click", nil) {
		t.Fatalf("DispatchEvent returned false")
	}
	if !fired {
		t.Errorf("handler did not run")
	}

	d.RemoveProperty(btn, "onclick")
	if d.DispatchEvent(btn, "click", nil) {
		t.Errorf("handler still registered after removal")
	}
}

func TestDispatchEventPayload(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input").(*Node)

	var got any
	d.SetProperty(input, "oninput", func(p any) { got = p })
	d.DispatchEvent(input, "input", "hello")

	if got != "hello" {
		t.Errorf("payload = %v, want hello", got)
	}
}

func TestGetElementByID(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div").(*Node)
	inner := d.CreateElement("span").(*Node)
	d.SetProperty(inner, "id", "target")
	d.AppendChild(d.Root(), outer)
	d.AppendChild(outer, inner)

	if got := d.GetElementByID("target"); got != inner {
		t.Errorf("GetElementByID = %v, want inner span", got)
	}
	if got := d.GetElementByID("missing"); got != nil {
		t.Errorf("GetElementByID(missing) = %v, want nil", got)
	}
}

func TestDestroyDropsIDs(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div").(*Node)
	child := d.CreateText("x").(*Node)
	d.AppendChild(div, child)

	if d.ByID(child.ID()) != child {
		t.Fatalf("child not registered")
	}
	d.Destroy(div)
	if d.ByID(div.ID()) != nil || d.ByID(child.ID()) != nil {
		t.Errorf("destroyed subtree still registered")
	}
}
