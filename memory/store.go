package memory

// AttributeStore is a read-only view of the kernel device tree. Paths
// are relative to the system root so a --sysroot override stays a
// store concern.
type AttributeStore interface {
	Read(path string) (string, error)
	List(path string) ([]string, error)
	Exists(path string) bool
}
