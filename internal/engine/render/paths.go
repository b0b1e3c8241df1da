package render

import "path/filepath"

// SamePaths reports whether two ordered texture path lists are identical.
// Backends reload their whole texture set when the lists differ.
func SamePaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ResolveTexturePath makes a model texture path loadable: absolute paths
// pass through, relative ones are joined to the model file's directory.
func ResolveTexturePath(path, modelPath string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if modelPath == "" {
		return path
	}
	return filepath.Join(filepath.Dir(modelPath), path)
}
