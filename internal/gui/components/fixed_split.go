package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// FixedSplit lays out a leading pane of fixed width next to a trailing pane
// that takes the remaining space. No divider is drawn and it cannot be dragged.
type FixedSplit struct {
	widget.BaseWidget
	leading      fyne.CanvasObject
	trailing     fyne.CanvasObject
	leadingWidth float32
}

func NewFixedSplit(leading, trailing fyne.CanvasObject, leadingWidth float32) *FixedSplit {
	split := &FixedSplit{
		leading:      leading,
		trailing:     trailing,
		leadingWidth: leadingWidth,
	}
	split.ExtendBaseWidget(split)
	return split
}

func (f *FixedSplit) CreateRenderer() fyne.WidgetRenderer {
	return &fixedSplitRenderer{
		split:   f,
		objects: []fyne.CanvasObject{f.leading, f.trailing},
	}
}

type fixedSplitRenderer struct {
	split   *FixedSplit
	objects []fyne.CanvasObject
}

func (r *fixedSplitRenderer) Layout(size fyne.Size) {
	leadingWidth := fyne.Min(r.split.leadingWidth, size.Width)
	trailingWidth := size.Width - leadingWidth

	r.split.leading.Resize(fyne.NewSize(leadingWidth, size.Height))
	r.split.leading.Move(fyne.NewPos(0, 0))

	r.split.trailing.Resize(fyne.NewSize(trailingWidth, size.Height))
	r.split.trailing.Move(fyne.NewPos(leadingWidth, 0))
}

func (r *fixedSplitRenderer) MinSize() fyne.Size {
	trailingMin := r.split.trailing.MinSize()
	height := fyne.Max(r.split.leading.MinSize().Height, trailingMin.Height)

	return fyne.NewSize(r.split.leadingWidth+trailingMin.Width, height)
}

func (r *fixedSplitRenderer) Refresh() {
	r.Layout(r.split.Size())
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *fixedSplitRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *fixedSplitRenderer) Destroy() {}
