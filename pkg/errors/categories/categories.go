package categories

// Category tells which side of the pipeline an error belongs to.
type Category string

const (
	Configuration Category = "configuration"
	Source        Category = "source"
	Target        Category = "target"
	Internal      Category = "internal"
)
