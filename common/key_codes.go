package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
)

// KeyPressed reports whether a key is held. Window layers adapt their polling call to it.
type KeyPressed func(key int) bool

// KeySet is a KeyPressed backed by a fixed set of held keys, for scripted input.
type KeySet map[int]bool

// Pressed reports whether key is in the set.
func (k KeySet) Pressed(key int) bool {
	return k[key]
}

// ParseKeySet builds a KeySet from printable key characters. Letters are case-insensitive and a
// space character holds KeySpace. Characters without a key code are ignored.
//
// Parameters:
//   - keys: the held keys, e.g. "as " for A, S and space
//
// Returns:
//   - KeySet: the held keys
func ParseKeySet(keys string) KeySet {
	set := KeySet{}
	for _, r := range keys {
		switch {
		case r >= 'a' && r <= 'z':
			set[int(r-'a'+'A')] = true
		case r >= 'A' && r <= 'Z', r == ' ':
			set[int(r)] = true
		}
	}
	return set
}
