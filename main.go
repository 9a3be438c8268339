package main

import "github.com/shivani123B/fitlog/cmd/fitlog"

func main() {
	fitlog.Execute()
}
