// Package bgpstuff is a client for the bgpstuff.net REST API. It looks
// up routes, origin ASNs, AS paths, ROA validity, AS names, sourced and
// invalid prefixes, and table totals from the hosted route collector.
//
// Construct one Client and reuse it; the built-in rate limiter only
// protects the service when all calls share the same Client. Inputs are
// validated locally, so private and reserved addresses never reach the
// wire.
//
//	client, err := bgpstuff.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	route, err := client.GetRoute(ctx, "8.8.8.8")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if route.Exists {
//		fmt.Println(route.Prefix) // 8.8.8.0/24
//	}
package bgpstuff
