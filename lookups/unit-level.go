package lookups

// Symbols of legal values
const (
	ULundergraduate int32 = iota
	ULpostgraduate
)

// UnitLevel returns a "generic" string for a given value
func UnitLevel(value int32) string {

	var str = ""

	switch {
	case value == ULundergraduate:
		str = "undergraduate"
	case value == ULpostgraduate:
		str = "postgraduate"
	}

	return str
}
