package debughelpers

// Version is the released version of the package.
const Version = "0.4.3" // x-release-please-version

// Hello returns a greeting for name.
func Hello(name string) string {
	return "Hello, " + name + "!"
}

// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}
