package main

// topic is a suggested conversation starter.
type topic struct {
	ID     string
	Label  string
	Prompt string
}

var topics = []topic{
	{"anxiety", "Anxiety & Fear", "I am feeling anxious. Can you share some bible verses to help me find peace?"},
	{"faith", "Growing Faith", "How can I strengthen my faith in difficult times?"},
	{"guidance", "Seeking Guidance", "I need guidance for a big decision. What does the Bible say about wisdom?"},
	{"relationships", "Relationships", "How can I build Godly relationships and handle conflict?"},
	{"purpose", "Finding Purpose", "What does the Bible say about finding my purpose in life?"},
	{"healing", "Healing & Comfort", "I need comfort and healing. Please share some scriptures for physical and emotional restoration."},
	{"forgiveness", "Forgiveness", "I'm struggling to forgive. What does Jesus teach us about forgiveness?"},
	{"gratitude", "Gratitude", "Help me cultivate a heart of gratitude with some inspiring verses."},
	{"patience", "Patience", "I'm feeling impatient. Show me scripture about waiting on the Lord."},
	{"sin", "Overcoming Sin", "How can I resist temptation and overcome sin in my life?"},
	{"family", "Marriage & Family", "What is biblical advice for a strong marriage and raising a family?"},
	{"work", "Work & Career", "How should a Christian approach work, career, and business?"},
	{"sadness", "Depression & Hope", "I feel down and depressed. Please share verses of hope and light to lift my spirit."},
	{"strength", "Strength & Courage", "I need strength and courage. Show me verses about God's power in my weakness."},
	{"sleep", "Peaceful Sleep", "I am struggling to sleep. Please share verses to help me rest in God's peace."},
	{"grief", "Handling Grief", "I am grieving a loss. Please comfort me with scripture about God's nearness to the brokenhearted."},
	{"finance", "Financial Wisdom", "What does the Bible teach about money, stewardship, and generosity?"},
	{"joy", "True Joy", "How can I find true joy in the Lord, even when life is hard?"},
	{"wisdom", "Seeking Wisdom", "I need wisdom for my life. What does Proverbs say about seeking understanding?"},
	{"enemies", "Loving Enemies", "How can I love those who are difficult or who have hurt me?"},
	{"humility", "Humility", "Teach me about the virtue of humility and how to walk humbly with God."},
	{"hope", "Hope in Hardship", "I am going through a hard time. Give me verses of hope to hold onto."},
	{"armor", "Spiritual Armor", "Explain the Full Armor of God and how I can wear it daily."},
	{"friendship", "Friendship", "What does the Bible say about being a good friend and choosing godly company?"},
}

func topicByID(id string) (topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return topic{}, false
}
