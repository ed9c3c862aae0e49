package toast

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestToast(t *testing.T) {
	tests := []struct {
		name    string
		props   Props
		want    []string
		notWant []string
	}{
		{
			name:    "default variant",
			props:   Props{Title: "Saved"},
			want:    []string{`data-variant="default"`, "Saved", "text-gray-900"},
			notWant: []string{"data-toast-dismiss", "aria-hidden"},
		},
		{
			name:    "class override wins",
			props:   Props{Variant: VariantInfo, Description: "use HH:mm", Class: "bg-white", Icon: true, Dismissible: true},
			want:    []string{"bg-white", "use HH:mm", "data-toast-dismiss", "aria-hidden"},
			notWant: []string{"bg-blue-50"},
		},
		{
			name:    "escapes text",
			props:   Props{Title: "<b>x</b>"},
			want:    []string{"&lt;b&gt;x&lt;/b&gt;"},
			notWant: []string{"<b>x</b>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Toast(tt.props).Render(context.Background(), &buf)
			if err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in %s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %q in %s", w, out)
				}
			}
		})
	}
}
