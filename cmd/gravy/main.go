// Command gravy recovers tables from PDFs and page dumps.
package main

func main() {
	Execute()
}
