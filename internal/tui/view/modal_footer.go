package view

// SuggestFooter renders the footer for the suggestion modal.
func SuggestFooter(accepted int, styles ModalStyles) string {
	if accepted == 0 {
		return RenderModalButtons(styles, "[m] Amend", "[Esc/c] Cancel")
	}
	return RenderModalButtons(styles, "[Enter/a] Apply", "[m] Amend", "[Esc/c] Cancel")
}

// CoverageFooter renders the footer for the coverage modal.
func CoverageFooter(hasInsight bool, styles ModalStyles) string {
	if hasInsight {
		return RenderModalButtons(styles, "[Esc] Close")
	}
	return RenderModalButtons(styles, "[r] Review", "[Esc] Close")
}

// ConfirmQuitFooter renders the footer for the unsaved changes modal.
func ConfirmQuitFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[s] Save & quit", "[y] Discard", "[n/Esc] Stay")
}

// ListFooter renders the footer for selection lists.
func ListFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Select", "[j/k] Move", "[Esc] Cancel")
}
