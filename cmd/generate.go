package main

//go:generate echo "Generating SQLC files..."
//go:generate bash -c "export PATH=$$PATH:~/go/bin && sqlc generate -f ../storage/sqlc.yaml"
//go:generate echo "SQLC files generated"

// Page templates are plain html/template files embedded by the views package
// and need no generation step. To regenerate the token queries run
//
// go generate ./...
//
// from the project root directory.
