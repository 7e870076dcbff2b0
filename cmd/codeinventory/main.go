package main

import "github.com/dbsmedya/codeinventory/cmd/codeinventory/cmd"

func main() {
	cmd.Execute()
}
