package main

import "github.com/Shafnaa/scrapping-tokopedia-review/cmd"

func main() {
	cmd.Execute()
}
