package inventory

import (
	"strings"

	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/services/inventory"
	"github.com/sheetsync/sheetsync/internal/tui/components"
)

// Action is what the form asks its owner to do after a key press.
type Action int

const (
	ActionNone Action = iota
	ActionLookup
	ActionCreateProduct
	ActionSubmit
	ActionCancel
)

// AddForm collects one batch: the barcode is looked up first, an unknown
// barcode can be given a product name, then quantity and expiry are entered.
type AddForm struct {
	styles components.Styles

	barcode    *components.Input
	newProduct *components.Input
	quantity   *components.Input
	expiry     *components.Input
	fields     *components.FieldSet

	product  *models.Product
	creating bool
	message  string
	err      string
}

// NewAddForm creates an empty form focused on the barcode.
func NewAddForm(styles components.Styles) *AddForm {
	f := &AddForm{
		styles:     styles,
		barcode:    components.NewInput("Barcode").SetRequired(true).SetWidth(16).SetMaxLength(32).SetStyles(styles),
		newProduct: components.NewInput("New Product Name").SetRequired(true).SetWidth(30).SetStyles(styles),
		quantity:   components.NewInput("Quantity").SetRequired(true).SetWidth(6).SetMaxLength(6).SetValue("1").SetStyles(styles),
		expiry:     components.NewInput("Expiry Date").SetRequired(true).SetWidth(12).SetMaxLength(10).SetPlaceholder("YYYY-MM-DD").SetStyles(styles),
	}
	f.fields = components.NewFieldSet(f.barcode)
	return f
}

// HandleKey handles key input and reports the action the owner should take.
func (f *AddForm) HandleKey(key string) Action {
	switch key {
	case "esc":
		return ActionCancel
	case "tab", "down":
		f.fields.Next()
		return ActionNone
	case "shift+tab", "up":
		f.fields.Prev()
		return ActionNone
	case "ctrl+s":
		if f.product != nil {
			return f.submit()
		}
		return f.enter()
	case "enter":
		return f.enter()
	}

	before := f.barcode.Value()
	f.fields.HandleKey(key)
	if f.barcode.Value() != before && (f.product != nil || f.creating) {
		f.resetProduct()
	}
	return ActionNone
}

func (f *AddForm) enter() Action {
	switch f.fields.Focused() {
	case components.FormField(f.barcode):
		if f.Barcode() == "" {
			f.err = "Please enter or scan a barcode first."
			return ActionNone
		}
		f.err = ""
		return ActionLookup
	case components.FormField(f.newProduct):
		if !f.newProduct.Validate() {
			return ActionNone
		}
		return ActionCreateProduct
	case components.FormField(f.expiry):
		return f.submit()
	default:
		f.fields.Next()
		return ActionNone
	}
}

func (f *AddForm) submit() Action {
	okQty := f.quantity.Validate()
	okExpiry := f.expiry.Validate()
	if !okQty || !okExpiry {
		return ActionNone
	}
	return ActionSubmit
}

// resetProduct returns to the lookup step after the barcode is edited.
func (f *AddForm) resetProduct() {
	f.product = nil
	f.creating = false
	f.message = ""
	f.fields = components.NewFieldSet(f.barcode)
	f.newProduct.Focus(false)
	f.quantity.Focus(false)
	f.expiry.Focus(false)
	f.barcode.Focus(true)
}

// Barcode returns the trimmed barcode.
func (f *AddForm) Barcode() string {
	return strings.TrimSpace(f.barcode.Value())
}

// NewProductName returns the trimmed name typed for an unknown barcode.
func (f *AddForm) NewProductName() string {
	return strings.TrimSpace(f.newProduct.Value())
}

// Product returns the resolved product, if any.
func (f *AddForm) Product() *models.Product {
	return f.product
}

// IsCreatingProduct reports whether the form is asking for a new product name.
func (f *AddForm) IsCreatingProduct() bool {
	return f.creating
}

// SetProduct records the product for the barcode and moves on to quantity.
func (f *AddForm) SetProduct(p *models.Product) {
	f.product = p
	f.creating = false
	f.err = ""
	f.message = ""
	f.newProduct.Focus(false)
	f.fields = components.NewFieldSet(f.barcode, f.quantity, f.expiry)
	f.fields.FocusField(f.quantity)
}

// SetNotFound switches to naming a new product for the barcode.
func (f *AddForm) SetNotFound() {
	f.product = nil
	f.creating = true
	f.err = ""
	f.message = "This barcode does not match any product. You can create a new one below."
	f.fields = components.NewFieldSet(f.barcode, f.newProduct)
	f.fields.FocusField(f.newProduct)
}

// SetError shows a form-level error.
func (f *AddForm) SetError(msg string) {
	f.err = msg
}

// Error returns the form-level error.
func (f *AddForm) Error() string {
	return f.err
}

// SetFieldErrors attaches validation errors from err to their inputs. Errors
// that belong to no visible input become the form-level error.
func (f *AddForm) SetFieldErrors(err error) {
	var rest []string
	for _, ve := range models.ValidationErrors(err) {
		switch ve.Field {
		case models.FieldBarcode:
			f.barcode.SetError(ve.Message)
		case models.FieldQuantity:
			f.quantity.SetError(ve.Message)
		case models.FieldExpiryDate:
			f.expiry.SetError(ve.Message)
		case models.FieldName:
			if f.creating {
				f.newProduct.SetError(ve.Message)
				continue
			}
			rest = append(rest, ve.Error())
		default:
			rest = append(rest, ve.Error())
		}
	}
	if len(rest) > 0 {
		f.err = strings.Join(rest, "; ")
	} else if len(models.ValidationErrors(err)) == 0 && err != nil {
		f.err = err.Error()
	}
}

// Input returns the form contents as service input.
func (f *AddForm) Input() inventory.AddEntryInput {
	in := inventory.AddEntryInput{
		Barcode:    f.Barcode(),
		ExpiryDate: strings.TrimSpace(f.expiry.Value()),
		Quantity:   strings.TrimSpace(f.quantity.Value()),
	}
	if f.product != nil {
		in.Name = f.product.Name
	}
	return in
}

// Render renders the form.
func (f *AddForm) Render(width int) string {
	s := f.styles

	labelWidth := components.DefaultLabelWidth + 2
	if width > 0 && width < 60 {
		labelWidth = 10
	}

	var b strings.Builder

	b.WriteString(s.Title.Render("═══ ADD NEW ITEM ═══"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Type or scan a barcode and press Enter to look it up."))
	b.WriteString("\n\n")

	b.WriteString(f.barcode.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")

	if f.creating {
		b.WriteString("\n")
		b.WriteString(s.Label.Render("Add a new product for barcode: "))
		b.WriteString(s.Accent.Render(f.Barcode()))
		b.WriteString("\n")
		b.WriteString(f.newProduct.RenderWithLabelWidth(labelWidth))
		b.WriteString("\n")
	}

	if f.product != nil {
		b.WriteString("\n")
		b.WriteString(s.Label.Width(labelWidth).Render("Item Name:"))
		b.WriteString(" ")
		b.WriteString(s.Value.Bold(true).Render(f.product.Name))
		b.WriteString("\n")
		b.WriteString(f.quantity.RenderWithLabelWidth(labelWidth))
		b.WriteString("\n")
		b.WriteString(f.expiry.RenderWithLabelWidth(labelWidth))
		b.WriteString("\n")
	}

	if f.message != "" {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(components.Wrap(f.message, width)))
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render("Error: " + f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case f.product != nil:
		b.WriteString(s.Help.Render("Tab:Next  Enter:Next/Add Item  Ctrl+S:Add Item  Esc:Cancel"))
	case f.creating:
		b.WriteString(s.Help.Render("Enter:Create Product  Tab:Next  Esc:Cancel"))
	default:
		b.WriteString(s.Help.Render("Enter:Look Up  Esc:Cancel"))
	}

	return b.String()
}
