package tui

import (
	"navedit-cli/internal/model"
)

type menuLoadedMsg struct {
	items     []model.NavigationItem
	fromDraft bool
	err       error
}

type catalogLoadedMsg struct {
	catalog model.Catalog
	err     error
}

type attributesLoadedMsg struct {
	attrs []model.Attribute
	err   error
}

type valuesLoadedMsg struct {
	attribute string
	values    []model.AttributeValue
	err       error
}

type previewCountMsg struct {
	count int
	err   error
}

type draftSavedMsg struct {
	err error
}

type saveDoneMsg struct {
	err error
}

type flashDoneMsg struct {
	seq int
}
