package gitx

import (
	"reflect"
	"testing"
)

func TestParseChangedLines(t *testing.T) {
	cases := []struct {
		name string
		diff string
		want []uint32
	}{
		{
			name: "empty diff",
			diff: "",
			want: nil,
		},
		{
			name: "modified lines with context",
			diff: "diff --git a/source b/source\n" +
				"index 1111111..2222222 100644\n" +
				"--- a/source\n" +
				"+++ b/source\n" +
				"@@ -5,2 +5,3 @@\n" +
				" unchanged\n" +
				"-deleted\n" +
				"+added one\n" +
				"+added two\n",
			want: []uint32{6, 7},
		},
		{
			name: "zero-context insertion",
			diff: "@@ -10,0 +11,2 @@\n" +
				"+inserted one\n" +
				"+inserted two\n",
			want: []uint32{11, 12},
		},
		{
			name: "multiple hunks",
			diff: "@@ -1 +1 @@\n" +
				"-old first\n" +
				"+new first\n" +
				"@@ -20,2 +20,2 @@\n" +
				"-old a\n" +
				"-old b\n" +
				"+new a\n" +
				"+new b\n",
			want: []uint32{1, 20, 21},
		},
		{
			name: "pure deletion adds nothing",
			diff: "@@ -4,2 +3,0 @@\n" +
				"-gone one\n" +
				"-gone two\n",
			want: nil,
		},
		{
			name: "file header plus is not an added line",
			diff: "+++ b/source\n" +
				"@@ -1 +1 @@\n" +
				"+only this\n",
			want: []uint32{1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseChangedLines(tc.diff)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseHunkNewStart(t *testing.T) {
	cases := []struct {
		line  string
		want  uint32
		valid bool
	}{
		{"@@ -5,2 +5,3 @@", 5, true},
		{"@@ -10,0 +11,2 @@ func heading()", 11, true},
		{"@@ -1 +1 @@", 1, true},
		{"@@ -3,4 +0,0 @@", 0, true},
		{"@@ garbage @@", 0, false},
		{"not a hunk", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseHunkNewStart(tc.line)
		if ok != tc.valid || got != tc.want {
			t.Errorf("parseHunkNewStart(%q): expected (%d, %v), got (%d, %v)",
				tc.line, tc.want, tc.valid, got, ok)
		}
	}
}

func TestPickBaseBranch(t *testing.T) {
	cases := []struct {
		name string
		refs []string
		want string
	}{
		{"origin main wins", []string{"feature/x", "master", "origin/main", "main"}, "origin/main"},
		{"local main beats masters", []string{"origin/master", "master", "main"}, "main"},
		{"remote master beats local", []string{"master", "origin/master"}, "origin/master"},
		{"master alone", []string{"dev", "master"}, "master"},
		{"nothing suitable", []string{"dev", "release/1.0"}, ""},
		{"empty listing", nil, ""},
		{"whitespace tolerated", []string{"  main  ", ""}, "main"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pickBaseBranch(tc.refs); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
