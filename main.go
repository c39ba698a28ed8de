package main

import "github.com/redactyl/credscan/cmd/credscan"

func main() { credscan.Execute() }
