// Command marcctl reads, cleans, converts and inspects bibliographic record
// files.
package main

func main() {
	execute()
}
