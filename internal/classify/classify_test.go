package classify

import (
	"reflect"
	"testing"
)

func TestTypeCheck(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name: "file diagnostics",
			output: "> tsc --noEmit\n" +
				"src/a.ts(10,5): error TS2304: Cannot find name 'foo'.\n" +
				"src/b.ts(3,1): error TS2322: Type 'string' is not assignable to type 'number'.\n",
			want: []string{
				"src/a.ts(10,5): error TS2304: Cannot find name 'foo'.",
				"src/b.ts(3,1): error TS2322: Type 'string' is not assignable to type 'number'.",
			},
		},
		{
			name:   "bare global diagnostic is trimmed",
			output: "   error TS5023: Unknown compiler option 'foo'.  \n",
			want:   []string{"error TS5023: Unknown compiler option 'foo'."},
		},
		{
			name:   "unrelated error text ignored",
			output: "ELIFECYCLE Command failed with exit code 2.\nerror: something else\n",
			want:   nil,
		},
		{
			name:   "duplicates kept",
			output: "error TS1: x\nerror TS1: x\n",
			want:   []string{"error TS1: x", "error TS1: x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeCheck.Classify(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TypeCheck.Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLint(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name: "diagnostics and summary",
			output: "src/a.ts:1:1 lint/style/useConst ━━━━\n" +
				"  ✖ This let declares a variable that is only assigned once.\n" +
				"  × Unexpected any. Specify a different type.\n" +
				"\n" +
				"Checked 12 files in 40ms. Found 2 errors.\n" +
				"2 error(s)\n",
			want: []string{
				"✖ This let declares a variable that is only assigned once.",
				"× Unexpected any. Specify a different type.",
			},
		},
		{
			name:   "case-insensitive error keyword",
			output: "ERROR: parse failure in config.json\n",
			want:   []string{"ERROR: parse failure in config.json"},
		},
		{
			name:   "found lines are summaries even with glyph",
			output: "✖ Found 1 problem\n",
			want:   nil,
		},
		{
			name:   "blank lines ignored",
			output: "\n   \n\t\n",
			want:   nil,
		},
		{
			name:   "clean output",
			output: "Checked 12 files in 40ms. No fixes applied.\n",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lint.Classify(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lint.Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTest(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name: "vitest failure",
			output: " ❯ src/math.test.ts (2 tests | 1 failed) 5ms\n" +
				"   × adds numbers\n" +
				" FAIL  src/math.test.ts > adds numbers\n" +
				"AssertionError: expected 3 to be 4\n" +
				" Test Files  1 failed (1)\n",
			want: []string{
				"❯ src/math.test.ts (2 tests | 1 failed) 5ms",
				"FAIL  src/math.test.ts > adds numbers",
				"AssertionError: expected 3 to be 4",
			},
		},
		{
			name:   "lowercase fail is not a marker",
			output: "1 failed\n",
			want:   nil,
		},
		{
			name:   "passing run",
			output: " ✓ src/math.test.ts (2 tests) 3ms\n Tests  2 passed (2)\n",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Test.Classify(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Test.Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	var c Classifier = Func(func(string) []string { return []string{"x"} })
	if got := c.Classify("anything"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Func.Classify() = %q, want [x]", got)
	}
}

func TestClassifiers_CRLF(t *testing.T) {
	got := TypeCheck.Classify("error TS1: a\r\nerror TS2: b\r\n")
	want := []string{"error TS1: a", "error TS2: b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TypeCheck.Classify() = %q, want %q", got, want)
	}
}
