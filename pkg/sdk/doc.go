// Package faqsearch embeds the FAQ search engine in a Go program.
//
// The catalog is loaded once into an immutable in-memory snapshot and searched
// with a linear keyword scan: title hits weigh 3, body hits 1, ties keep catalog
// order. Each query returns ranked snippets, an extractive summary and the ids
// of the selected documents.
//
//	client, _ := faqsearch.New(ctx, faqsearch.WithFile("data/faqs.json"))
//	defer client.Close()
//	out, _ := client.Search(ctx, "trust badges", 3)
//
// The catalog may also live under a single key in Valkey or Redis:
//
//	client, _ := faqsearch.New(ctx,
//	    faqsearch.WithValkey("localhost:6379", ""),
//	    faqsearch.WithKey("faqsearch:faqs"),
//	)
package faqsearch
