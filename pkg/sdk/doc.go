// Package scholarmatch is the embedded SDK for the researcher matching
// engine. It wires the recommendation and profile services over a direct
// Redis connection, without going through the HTTP API.
//
//	client, err := scholarmatch.New(ctx, scholarmatch.WithRedis("localhost:6379", ""))
//	if err != nil { ... }
//	defer client.Close()
//
//	recs, err := client.Recommend(ctx, "user-1", scholarmatch.RecommendOptions{TopK: 5})
package scholarmatch
