package component

// Article holds the determiners used when naming one or many of a thing.
type Article struct {
	One  string `yaml:"one"`
	Many string `yaml:"many"`
}

// DefaultArticle is used when a template names none.
var DefaultArticle = Article{One: "one", Many: "many"}

type Descriptible struct {
	Name        string
	Description string
	Article     Article
}
