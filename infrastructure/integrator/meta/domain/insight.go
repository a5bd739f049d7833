package metadomain

// Action é um item de actions/action_values. A Graph API envia os valores como string.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha diária do endpoint /insights, com ou sem breakdown
type Insight struct {
	DateStart            string   `json:"date_start"`
	DateStop             string   `json:"date_stop"`
	AccountID            string   `json:"account_id"`
	AccountCurrency      string   `json:"account_currency"`
	CampaignID           string   `json:"campaign_id"`
	AdSetID              string   `json:"adset_id"`
	AdID                 string   `json:"ad_id"`
	Impressions          string   `json:"impressions"`
	Reach                string   `json:"reach"`
	Frequency            string   `json:"frequency"`
	Clicks               string   `json:"clicks"`
	UniqueClicks         string   `json:"unique_clicks"`
	Spend                string   `json:"spend"`
	InlineLinkClicks     string   `json:"inline_link_clicks"`
	InlinePostEngagement string   `json:"inline_post_engagement"`
	Actions              []Action `json:"actions"`
	ActionValues         []Action `json:"action_values"`
	PurchaseRoas         []Action `json:"purchase_roas"`

	Age               string `json:"age"`
	Gender            string `json:"gender"`
	Country           string `json:"country"`
	DevicePlatform    string `json:"device_platform"`
	PublisherPlatform string `json:"publisher_platform"`
	PlatformPosition  string `json:"platform_position"`
	ImpressionDevice  string `json:"impression_device"`
}

// Dimension devolve o valor de uma dimensão de breakdown; vazio quando ausente
func (i *Insight) Dimension(name string) string {
	switch name {
	case "age":
		return i.Age
	case "gender":
		return i.Gender
	case "country":
		return i.Country
	case "device_platform":
		return i.DevicePlatform
	case "publisher_platform":
		return i.PublisherPlatform
	case "platform_position":
		return i.PlatformPosition
	case "impression_device":
		return i.ImpressionDevice
	}
	return ""
}
