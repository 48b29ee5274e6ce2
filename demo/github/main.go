package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/saturnines/graphql-request/pkg/config"
	"github.com/saturnines/graphql-request/pkg/graphql"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	// Load the YAML config (token comes from GITHUB_TOKEN)
	loader := config.NewClientLoader(
		&config.EnvExpander{},
		&config.ClientDefaults{},
		&config.ClientValidator{},
	)

	cfg, err := loader.Load("demo/github/github.yaml")
	if err != nil {
		log.Fatal(err)
	}

	client, err := graphql.NewFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Page through the viewer's repositories.
	pager, err := graphql.NewPager(
		client,
		`query ($after: String) {
			viewer {
				repositories(first: 50, after: $after) {
					nodes { nameWithOwner stargazerCount }
					pageInfo { endCursor hasNextPage }
				}
			}
		}`,
		"after",
		[]string{"viewer", "repositories", "pageInfo", "endCursor"},
		[]string{"viewer", "repositories", "pageInfo", "hasNextPage"},
	)
	if err != nil {
		log.Fatal(err)
	}

	total := 0
	for pager.HasMore() {
		data, err := pager.NextPage(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		if data == nil {
			break
		}
		viewer := data["viewer"].(map[string]any)
		repos := viewer["repositories"].(map[string]any)
		for _, node := range repos["nodes"].([]any) {
			repo := node.(map[string]any)
			fmt.Printf("%s (%v stars)\n", repo["nameWithOwner"], repo["stargazerCount"])
			total++
		}
	}

	fmt.Printf("Listed %d repositories\n", total)
}
