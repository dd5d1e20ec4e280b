package main

import "github.com/goplus/mkpatch/cmd/mkpatch/internal"

func main() {
	internal.Execute()
}
