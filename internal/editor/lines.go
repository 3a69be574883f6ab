package editor

// Lines is a ContentProvider over a fixed slice of rows.
type Lines []string

// Row returns line y, or false past the end.
func (l Lines) Row(y int) (string, bool) {
	if y < 0 || y >= len(l) {
		return "", false
	}
	return l[y], true
}
