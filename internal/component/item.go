package component

type Item struct {
	Name string
}
