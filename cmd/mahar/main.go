// Command mahar browses the Mahar Milhama site in the terminal.
package main

func main() {
	Execute()
}
