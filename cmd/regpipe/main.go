// Command regpipe trains a regression model on a CSV dataset and reports
// its held-out metrics.
package main

func main() {
	Execute()
}
