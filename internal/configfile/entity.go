package configfile

// Entity is the behaviour shared by projects and managed layouts.
type Entity interface {
	Name() string
	Path() string
	Verify() error
}
