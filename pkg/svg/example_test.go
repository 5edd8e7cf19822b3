package svg_test

import (
	"fmt"

	"github.com/matzehuels/svgext/pkg/svg"
)

func ExampleMergeClasses() {
	fmt.Println(svg.MergeClasses("icon icon--big", "icon--big is-active"))
	// Output: icon icon--big is-active
}

func ExampleParseIdentifier() {
	for _, raw := range []string{"check", "icons/arrow-left.svg"} {
		id := svg.ParseIdentifier(raw)
		fmt.Println(id.Kind, id.SymbolID())
	}
	// Output:
	// bare check
	// explicit arrow-left
}

func ExampleUse() {
	fmt.Println(svg.Use("check", "icon", "", nil))
	// Output: <svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" class="icon" role="img" aria-hidden="true"><use href="#icon-check" xlink:href="#icon-check"/></svg>
}
