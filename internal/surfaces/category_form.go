// internal/surfaces/category_form.go
package surfaces

import (
	"context"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// CategoryDraft is the text typed into the category form
type CategoryDraft struct {
	Name string
}

var categoryFields = []field[CategoryDraft]{
	{name: "name", set: func(d *CategoryDraft, v string) error { d.Name = v; return nil }},
}

// CategoryForm is the create/edit surface for a category
type CategoryForm struct {
	saver CategorySaver

	open   bool
	target domain.ID
	draft  CategoryDraft
}

// NewCategoryForm creates a closed form
func NewCategoryForm(saver CategorySaver) *CategoryForm {
	return &CategoryForm{saver: saver}
}

// Open shows the form for target, or for a new category when target is nil
func (f *CategoryForm) Open(target *domain.Category) {
	f.open = true
	f.target = ""
	f.draft = CategoryDraft{}
	if target != nil {
		f.target = target.ID
		f.draft.Name = target.Name
	}
}

func (f *CategoryForm) Close()               { f.open = false }
func (f *CategoryForm) IsOpen() bool         { return f.open }
func (f *CategoryForm) Editing() bool        { return !f.target.IsZero() }
func (f *CategoryForm) Target() domain.ID    { return f.target }
func (f *CategoryForm) Draft() CategoryDraft { return f.draft }
func (f *CategoryForm) Fields() []string     { return fieldNames(categoryFields) }
func (f *CategoryForm) Set(name, v string) error {
	return setField(categoryFields, &f.draft, name, v)
}

// Submit saves the draft; the controller rejects an empty name before dispatch
func (f *CategoryForm) Submit(ctx context.Context) bool {
	if !f.open {
		return false
	}
	if !f.saver.Save(ctx, domain.CategoryInput{Name: f.draft.Name}, f.target) {
		return false
	}
	f.Close()
	return true
}
