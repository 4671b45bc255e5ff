package listing

import (
	"strings"
	"testing"

	"github.com/orizehavi/listingforge/internal/errors"
)

func TestValidateAspectRatio(t *testing.T) {
	tests := []struct {
		name    string
		ratio   AspectRatio
		wantErr bool
	}{
		{"portrait", AspectPortrait, false},
		{"landscape", AspectLandscape, false},
		{"square", AspectRatio("square"), true},
		{"missing", AspectRatio(""), true},
		{"uppercase is not recognized", AspectRatio("Portrait"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAspectRatio("prints", tt.ratio)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateAspectRatio(%q) = nil, want contract violation", tt.ratio)
				}
				if !errors.IsContractViolation(err) {
					t.Errorf("error is not a ContractViolationError: %v", err)
				}
				if got := errors.Stage(err); got != "prints" {
					t.Errorf("Stage(err) = %q, want %q", got, "prints")
				}
			} else if err != nil {
				t.Errorf("ValidateAspectRatio(%q) = %v, want nil", tt.ratio, err)
			}
		})
	}
}

func TestNewPromptRecordCopiesAspectRatio(t *testing.T) {
	c := Concept{
		Style:          "minimalist",
		Theme:          "ocean",
		TargetAudience: "coastal-home-owners",
		AspectRatio:    AspectLandscape,
	}

	rec := NewPromptRecord(c, "a minimalist ocean scene")
	if rec.AspectRatio != c.AspectRatio {
		t.Errorf("PromptRecord.AspectRatio = %q, want %q", rec.AspectRatio, c.AspectRatio)
	}
	if rec.Prompt != "a minimalist ocean scene" {
		t.Errorf("PromptRecord.Prompt = %q", rec.Prompt)
	}
}

func TestPrintSizes(t *testing.T) {
	tests := []struct {
		ratio AspectRatio
		want  []string
	}{
		{AspectPortrait, []string{"4x6", "5x7", "8x10", "11x14", "16x20"}},
		{AspectLandscape, []string{"6x4", "7x5", "10x8", "14x11", "20x16"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.ratio), func(t *testing.T) {
			sizes := PrintSizes(tt.ratio)
			if len(sizes) != len(tt.want) {
				t.Fatalf("PrintSizes(%s) returned %d sizes, want %d", tt.ratio, len(sizes), len(tt.want))
			}
			for i, s := range sizes {
				if s.Name != tt.want[i] {
					t.Errorf("size[%d] = %s, want %s", i, s.Name, tt.want[i])
				}
				if s.WidthPx != s.WidthIn*PrintDPI || s.HeightPx != s.HeightIn*PrintDPI {
					t.Errorf("size %s pixel dimensions %dx%d do not match %d DPI",
						s.Name, s.WidthPx, s.HeightPx, PrintDPI)
				}
			}
		})
	}

	if PrintSizes(AspectRatio("square")) != nil {
		t.Error("PrintSizes(square) should return nil")
	}
}

func TestPrintSizeTablesMirrorEachOther(t *testing.T) {
	portrait := PrintSizes(AspectPortrait)
	landscape := PrintSizes(AspectLandscape)

	for i := range portrait {
		if portrait[i].WidthIn != landscape[i].HeightIn || portrait[i].HeightIn != landscape[i].WidthIn {
			t.Errorf("landscape size %s is not the transpose of portrait size %s",
				landscape[i].Name, portrait[i].Name)
		}
	}
}

func TestTemplates(t *testing.T) {
	portrait := Templates(AspectPortrait)
	if len(portrait) != 4 {
		t.Fatalf("Templates(portrait) returned %d templates, want 4", len(portrait))
	}
	for _, name := range portrait {
		if !strings.HasPrefix(name, "portrait-") {
			t.Errorf("template %q does not belong to the portrait family", name)
		}
	}

	landscape := Templates(AspectLandscape)
	for _, name := range landscape {
		if !strings.HasPrefix(name, "landscape-") {
			t.Errorf("template %q does not belong to the landscape family", name)
		}
	}

	if Templates(AspectRatio("")) != nil {
		t.Error("Templates with missing ratio should return nil")
	}
}

func TestSEORecordClamp(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "drops over-length tags and preserves order",
			in:   []string{"ocean wall art", "this tag is far too long to keep", "coastal decor"},
			want: []string{"ocean wall art", "coastal decor"},
		},
		{
			name: "truncates to thirteen tags",
			in: []string{
				"t1", "t2", "t3", "t4", "t5", "t6", "t7",
				"t8", "t9", "t10", "t11", "t12", "t13", "t14", "t15",
			},
			want: []string{
				"t1", "t2", "t3", "t4", "t5", "t6", "t7",
				"t8", "t9", "t10", "t11", "t12", "t13",
			},
		},
		{
			name: "trims whitespace and drops empties",
			in:   []string{"  minimalist  ", "", "   "},
			want: []string{"minimalist"},
		},
		{
			// 20 characters but 23 bytes; the limit is per character.
			name: "keeps multibyte tags at the character limit",
			in:   []string{"ocëan àrt wall décor", "exactly twenty chars", "twenty-one characters"},
			want: []string{"ocëan àrt wall décor", "exactly twenty chars"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := SEORecord{Tags: tt.in}
			rec.Clamp()
			if len(rec.Tags) != len(tt.want) {
				t.Fatalf("Clamp left %d tags, want %d: %v", len(rec.Tags), len(tt.want), rec.Tags)
			}
			for i := range rec.Tags {
				if rec.Tags[i] != tt.want[i] {
					t.Errorf("tag[%d] = %q, want %q", i, rec.Tags[i], tt.want[i])
				}
			}
		})
	}
}
