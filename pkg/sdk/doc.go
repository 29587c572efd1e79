// Package sdk provides an embedded Go client for The Grid's GraphQL
// endpoint: the same filter catalog, query compiler, and result shaping
// the griddigger API server runs, wired for in-process use.
//
//	client, _ := sdk.New(sdk.WithEndpoint("https://beta.node.thegrid.id/graphql"))
//	defer client.Close()
//
//	set := sdk.NewSelectionSet(
//	    sdk.Select("profileSector", "DeFi"),
//	    sdk.Select("assetTicker", "ETH"),
//	)
//	refs := client.SearchProfiles(ctx, set)
//
//	card, _ := client.Profiles().Card(ctx, 0, refs[0].ID)
package sdk
