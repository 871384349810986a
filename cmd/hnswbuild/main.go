// Command hnswbuild is a small demo/debug CLI: it generates random vectors
// (it does not load vectors from files), builds an HNSW graph through the
// core packages, and reports degree/level statistics. It is a consumer of the
// core, not part of it, the way benchmarks/ consumes the teacher's
// package.
package main

import (
	"fmt"
	"os"

	"github.com/dmarro89/hnsw-builder/cmd/hnswbuild/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
