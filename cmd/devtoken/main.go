// Command devtoken prints an access token for local runs of the evaluator.
//
//	devtoken -u alice -s secretKey -t 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/server/auth"
)

func main() {
	user := flag.String("u", "", "user id placed in the token")
	secret := flag.String("s", "secretKey", "HMAC secret shared with the server")
	ttl := flag.Duration("t", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *user == "" {
		log.Fatal("-u is required")
	}

	token, err := auth.GenerateToken(*user, []byte(*secret), *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
