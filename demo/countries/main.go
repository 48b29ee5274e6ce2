package main

import (
	"context"
	"fmt"
	"log"

	"github.com/saturnines/graphql-request/pkg/graphql"
)

func main() {
	client := graphql.New(graphql.WithClientDefaults(
		graphql.WithBaseURL("https://countries.trevorblades.com"),
		graphql.WithURL("/"),
	))

	data, err := client.Query(context.Background(), `
		query ($code: ID!) {
			country(code: $code) {
				name
				capital
				currency
			}
		}
	`, graphql.WithVariable("code", "NZ"))
	if err != nil {
		log.Fatal(err)
	}

	country := data["country"].(map[string]any)
	fmt.Printf("%s — capital %s, currency %s\n",
		country["name"], country["capital"], country["currency"])
}
