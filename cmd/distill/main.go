// Command distill runs distillation tower scenarios against a recipe catalog.
package main

func main() {
	Execute()
}
