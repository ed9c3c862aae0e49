package toast

import twmerge "github.com/Oudwins/tailwind-merge-go"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

type Props struct {
	Title       string
	Description string
	Variant     Variant
	Icon        bool
	Dismissible bool
	Class       string
}

var variantIcons = map[Variant]string{
	VariantDefault: "•",
	VariantSuccess: "✓",
	VariantError:   "✗",
	VariantInfo:    "ℹ",
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-gray-200 bg-white text-gray-900",
	VariantSuccess: "border-green-200 bg-green-50 text-green-900",
	VariantError:   "border-red-200 bg-red-50 text-red-900",
	VariantInfo:    "border-blue-200 bg-blue-50 text-blue-900",
}

func (p Props) variant() Variant {
	if p.Variant == "" {
		return VariantDefault
	}
	return p.Variant
}

// classes merges the variant defaults with p.Class; later classes win.
func (p Props) classes() string {
	return twmerge.Merge("rounded-md border px-4 py-3 shadow-sm", variantClasses[p.variant()], p.Class)
}
