// Command nsctl resolves keys against a hierarchical configuration namespace.
package main

import "github.com/0xalexb/hjarta-ns/cli"

func main() {
	cli.Execute()
}
