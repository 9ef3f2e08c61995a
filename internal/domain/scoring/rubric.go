package scoring

// Group is a section of the rubric.
type Group string

const (
	GroupNeedDiscovery   Group = "need_discovery"
	GroupDesignExpertise Group = "design_expertise"
	GroupBudgetTimeline  Group = "budget_timeline"
	GroupCommunication   Group = "communication"
)

// Item describes one rubric line.
type Item struct {
	Key         string `json:"key"`
	Group       Group  `json:"group"`
	Description string `json:"description"`
}

// Rubric is the fixed list of evaluated behaviours, in item order.
var Rubric = [ItemCount]Item{
	{Key: "score1", Group: GroupNeedDiscovery, Description: "Asks about and understands how the space will be used, who lives there and their daily habits"},
	{Key: "score2", Group: GroupNeedDiscovery, Description: "Listens patiently and follows up on stated needs"},
	{Key: "score3", Group: GroupNeedDiscovery, Description: "Pins down the client's key requirements precisely"},
	{Key: "score4", Group: GroupDesignExpertise, Description: "Draws out preferred and disliked styles, colours and materials"},
	{Key: "score5", Group: GroupDesignExpertise, Description: "Asks which furniture and appliances will be kept or brought in"},
	{Key: "score6", Group: GroupDesignExpertise, Description: "Explains the design approach with concrete examples"},
	{Key: "score7", Group: GroupDesignExpertise, Description: "Demonstrates professional knowledge"},
	{Key: "score8", Group: GroupDesignExpertise, Description: "Uses company portfolio material to present its strengths"},
	{Key: "score9", Group: GroupBudgetTimeline, Description: "Raises the budget and helps the client understand its allocation"},
	{Key: "score10", Group: GroupBudgetTimeline, Description: "Discusses design and construction schedules and special timing needs"},
	{Key: "score11", Group: GroupBudgetTimeline, Description: "Notes that preliminary dimensions must be confirmed by an on-site survey"},
	{Key: "score12", Group: GroupBudgetTimeline, Description: "Agrees on preferred follow-up frequency and channel"},
	{Key: "score13", Group: GroupBudgetTimeline, Description: "Explains the design process, milestones and deliverables clearly"},
	{Key: "score14", Group: GroupCommunication, Description: "Presents a professional image through manner, speech and eye contact"},
	{Key: "score15", Group: GroupCommunication, Description: "Answers questions convincingly or logs them as follow-up items"},
	{Key: "score16", Group: GroupCommunication, Description: "Keeps control of the conversation and steers topics effectively"},
	{Key: "score17", Group: GroupCommunication, Description: "Invites the client to take the next step"},
	{Key: "score18", Group: GroupCommunication, Description: "Makes the client feel their needs are taken seriously"},
	{Key: "score19", Group: GroupCommunication, Description: "Keeps the meeting smooth, pleasant and trustworthy"},
	{Key: "score20", Group: GroupCommunication, Description: "Declines unreasonable requests tactfully but firmly"},
}
