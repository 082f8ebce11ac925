package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin      = 3  // Standard vertical margin (m.height - 3)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for prompts (m.width - 10)
	ModalHeightMarginSmall = 2  // Small vertical margin (m.height - 2)
	ModalHeightMarginMed   = 4  // Medium vertical margin (m.height - 4)

	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Content Area Offsets
	ContentOffsetLarge   = 9 // m.height - 9 for modals with footers
	MainViewHeightOffset = 5 // m.height - 5 for main render (header + status + borders)

	// Layout Margins
	MinimalBorderMargin  = 2 // m.width - 2 or m.height - 2 for minimal borders
	SplitPaneBorderWidth = 3 // Border width between sidebar and panel

	// Unscaled widths, multiplied by the UI scale factor
	SidebarWidth = 36
	LabelWidth   = 22
)
