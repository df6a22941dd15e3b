package importer

// SampleItems returns the rows a new quotation starts from: room headings
// with qty 0 and priced work items under them.
func SampleItems() []ItemInput {
	const wardrobe = "     WARDROBE WITH SLIDING DOORS INCLUDES 6 SHELFS AND 2 DRAWERS"
	return []ItemInput{
		{Description: "PLYWOOD WITH LAMINATE (BASIC)", Quantity: "0"},
		{Description: "T.V. UNIT (GROUND FLOOR)", Area: "80", Quantity: "1", Rate: "1050"},
		{Description: "MODULAR KITCHEN - 3 TANDOMS, 2 WICKER BASKET, 1 PULL-OUT (WITH TOP AND BOTTOM 'L' SHAPED STORAGE SPACE)", Area: "220", Quantity: "1", Rate: "1550"},
		{Description: "GROUND MASTER BEDROOM", Quantity: "0"},
		{Description: wardrobe, Area: "120", Quantity: "1", Rate: "1450"},
		{Description: "T.V. UNIT (1ST FLOOR)", Area: "75", Quantity: "1", Rate: "1050"},
		{Description: "1ST FLOOR MASTER BEDROOM", Quantity: "0"},
		{Description: wardrobe, Area: "120", Quantity: "1", Rate: "1450"},
		{Description: "SINGLE COT BEDROOM 1ST FLOOR", Quantity: "0"},
		{Description: wardrobe, Area: "80", Quantity: "1", Rate: "1450"},
	}
}
