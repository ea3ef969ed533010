package models

const (
	TopicTagResults        = "tag_results"
	TopicTriggers          = "automation_triggers"
	TopicCampaignMessages  = "campaign_messages"
	TopicRestaurantSummary = "restaurant_summaries"

	InputSourcePostgres = "postgres"
	InputSourceJSON     = "json"
	InputSourceDemo     = "demo"

	OutputConsole = "console"
	OutputJSON    = "json"
	OutputParquet = "parquet"
)
