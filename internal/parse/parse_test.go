package parse

import (
	"reflect"
	"testing"
)

func TestObject(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantKey string
		wantVal float64
		ok      bool
	}{
		{
			name:    "object with chatty preamble",
			text:    `Sure! Here's my analysis: {"alignment_score": 7, "notes": "good"}`,
			wantKey: "alignment_score",
			wantVal: 7,
			ok:      true,
		},
		{
			name:    "braces inside string values",
			text:    `{"summary": "uses {braces} inside", "style_score": 8}`,
			wantKey: "style_score",
			wantVal: 8,
			ok:      true,
		},
		{
			name:    "escaped quote inside string",
			text:    `{"summary": "he said \"use {tools}\"", "readability_score": 6}`,
			wantKey: "readability_score",
			wantVal: 6,
			ok:      true,
		},
		{
			name:    "fenced object",
			text:    "```json\n{\"structure_score\": 9}\n```",
			wantKey: "structure_score",
			wantVal: 9,
			ok:      true,
		},
		{
			name: "no object at all",
			text: "The post looks good overall, maybe shorten it.",
			ok:   false,
		},
		{
			name: "unbalanced braces",
			text: `{"alignment_score": 7`,
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := Object(tt.text)
			if ok != tt.ok {
				t.Fatalf("Object(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if got := obj[tt.wantKey]; got != tt.wantVal {
				t.Errorf("obj[%q] = %v, want %v", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}

func TestObjectNested(t *testing.T) {
	obj, ok := Object(`prefix {"outer": {"inner": 1}, "n": 2} suffix`)
	if !ok {
		t.Fatal("expected nested object to parse")
	}
	if obj["n"] != float64(2) {
		t.Errorf("obj[n] = %v, want 2", obj["n"])
	}
	inner, ok := obj["outer"].(map[string]any)
	if !ok || inner["inner"] != float64(1) {
		t.Errorf("nested object = %v", obj["outer"])
	}
}

func TestObjectInto(t *testing.T) {
	var out struct {
		Topic  string   `json:"topic"`
		Trends []string `json:"current_trends"`
	}
	text := "Here you go:\n```json\n{\"topic\": \"AI\", \"current_trends\": [\"t1\", \"t2\"]}\n```"
	if !ObjectInto(text, &out) {
		t.Fatal("expected ObjectInto to succeed")
	}
	if out.Topic != "AI" || len(out.Trends) != 2 {
		t.Errorf("decoded = %+v", out)
	}
}

func TestStringArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
		ok   bool
	}{
		{
			name: "plain array",
			text: `["topic1", "topic2", "topic3"]`,
			want: []string{"topic1", "topic2", "topic3"},
			ok:   true,
		},
		{
			name: "array with preamble",
			text: `Here are the topics: ["a", "b"]`,
			want: []string{"a", "b"},
			ok:   true,
		},
		{
			name: "mixed elements keep strings only",
			text: `["a", 2, "b"]`,
			want: []string{"a", "b"},
			ok:   true,
		},
		{
			name: "no array",
			text: "1. first topic\n2. second topic",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StringArray(tt.text)
			if ok != tt.ok {
				t.Fatalf("StringArray(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StringArray(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBullets(t *testing.T) {
	text := "intro line\n- first point\n* second point\n3. third point\n4) fourth point\nplain line"
	got := Bullets(text, 10)
	want := []string{"first point", "second point", "third point", "fourth point"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Bullets = %v, want %v", got, want)
	}

	if got := Bullets(text, 2); len(got) != 2 {
		t.Errorf("Bullets cap = %d items, want 2", len(got))
	}
	if got := Bullets("no bullets here at all", 5); got != nil {
		t.Errorf("Bullets on plain text = %v, want nil", got)
	}
}

func TestQuotes(t *testing.T) {
	text := `The author notes that "AI adoption is accelerating" in the report.
short "skip"
Another long line quoting "the future is distributed" for emphasis.`
	got := Quotes(text, 5)
	want := []string{"AI adoption is accelerating", "the future is distributed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Quotes = %v, want %v", got, want)
	}

	if got := Quotes(text, 1); len(got) != 1 {
		t.Errorf("Quotes cap = %d items, want 1", len(got))
	}
}

func TestStableDedup(t *testing.T) {
	got := StableDedup([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StableDedup = %v, want %v", got, want)
	}
	if got := StableDedup(nil); got != nil {
		t.Errorf("StableDedup(nil) = %v, want nil", got)
	}
}

func TestFence(t *testing.T) {
	if got := Fence("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Errorf("Fence json = %q", got)
	}
	if got := Fence("```\ntext\n```"); got != "text" {
		t.Errorf("Fence bare = %q", got)
	}
	if got := Fence("no fence"); got != "no fence" {
		t.Errorf("Fence passthrough = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate long = %q", got)
	}
}
