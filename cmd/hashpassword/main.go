// Command hashpassword prints a bcrypt hash for ORGANIZER_PASSWORD_HASH.
//
//	go run ./cmd/hashpassword 'organizer password'
package main

import (
	"fmt"
	"os"

	"github.com/Dosada05/swiss-tournament/utils"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(2)
	}

	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
