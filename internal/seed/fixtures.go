// Package seed provides the fixture collections the service starts with.
// Every function returns fresh values, so callers may mutate the result.
package seed

import (
	"time"

	"middlebeat/internal/domain/message"
	"middlebeat/internal/domain/project"
	"middlebeat/internal/domain/user"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func Users() []user.User {
	mk := func(id, email string, role user.Role, at string) user.User {
		t := ts(at)
		return user.User{ID: id, Email: email, Role: role, CreatedAt: t, UpdatedAt: t}
	}
	return []user.User{
		mk("1", "alex.music@example.com", user.RoleMusicCollaborator, "2024-01-15T10:00:00Z"),
		mk("2", "sarah.marketing@example.com", user.RoleInfluencerMarketer, "2024-01-16T11:00:00Z"),
		mk("3", "mike.scout@recordlabel.com", user.RoleRecordLabelScout, "2024-01-17T12:00:00Z"),
		mk("4", "emma.creator@example.com", user.RoleMusicCollaborator, "2024-01-18T13:00:00Z"),
		mk("5", "david.brand@company.com", user.RoleBrandSponsorshipManager, "2024-01-19T14:00:00Z"),
		mk("6", "lisa.manager@agency.com", user.RoleContentCreatorManager, "2024-01-20T15:00:00Z"),
		mk("7", "carlos.beats@example.com", user.RoleMusicCollaborator, "2024-01-21T16:00:00Z"),
		mk("8", "maya.vocalist@example.com", user.RoleMusicCollaborator, "2024-01-22T17:00:00Z"),
	}
}

func Profiles() []user.Profile {
	return []user.Profile{
		{
			ID:                "1",
			UserID:            "1",
			FullName:          "Alex Martinez",
			Bio:               "Passionate music producer and songwriter with 5+ years of experience. Specializing in electronic and pop music. Looking to collaborate with talented vocalists and musicians.",
			Location:          "Los Angeles, CA",
			ProfilePictureURL: "/images/profiles/alex.jpg",
			HeaderImageURL:    "/images/headers/studio.jpg",
			IsVerified:        true,
			SocialMedia:       user.SocialMedia{Spotify: "alexmartinezmusic", SoundCloud: "alexbeats", Instagram: "@alexmartinezproducer"},
			Skills:            []string{"Music Production", "Audio Engineering", "Songwriting", "Piano"},
			Genres:            []string{"Electronic", "Pop", "Indie"},
			Experience:        "5+ years",
			FollowerCount:     2840,
			FollowingCount:    156,
			Rating:            4.8,
			RatingCount:       42,
			CreatedAt:         ts("2024-01-15T10:00:00Z"),
			UpdatedAt:         ts("2024-01-15T10:00:00Z"),
		},
		{
			ID:                "2",
			UserID:            "2",
			FullName:          "Sarah Chen",
			Bio:               "Digital marketing specialist focusing on music industry. Helping artists grow their online presence and connect with their audience through strategic campaigns.",
			Location:          "New York, NY",
			ProfilePictureURL: "/images/profiles/sarah.jpg",
			HeaderImageURL:    "/images/headers/marketing.jpg",
			IsVerified:        true,
			SocialMedia:       user.SocialMedia{Instagram: "@sarahchen_marketing"},
			Skills:            []string{"Social Media Marketing", "Analytics", "Content Creation", "Branding"},
			Genres:            []string{"Pop", "Hip Hop", "R&B"},
			Experience:        "7+ years",
			FollowerCount:     1920,
			FollowingCount:    892,
			Rating:            4.9,
			RatingCount:       28,
			CreatedAt:         ts("2024-01-16T11:00:00Z"),
			UpdatedAt:         ts("2024-01-16T11:00:00Z"),
		},
		{
			ID:                "3",
			UserID:            "3",
			FullName:          "Mike Thompson",
			Bio:               "A&R Scout at Universal Music Group. Constantly searching for the next big talent in music. If you think you have what it takes, let me hear your sound.",
			Location:          "Nashville, TN",
			ProfilePictureURL: "/images/profiles/mike.jpg",
			HeaderImageURL:    "/images/headers/studio2.jpg",
			IsVerified:        true,
			Skills:            []string{"A&R", "Music Industry", "Talent Scouting"},
			Genres:            []string{"Country", "Rock", "Pop", "Alternative"},
			Experience:        "12+ years",
			FollowerCount:     890,
			FollowingCount:    423,
			Rating:            4.7,
			RatingCount:       15,
			CreatedAt:         ts("2024-01-17T12:00:00Z"),
			UpdatedAt:         ts("2024-01-17T12:00:00Z"),
		},
		{
			ID:                "4",
			UserID:            "4",
			FullName:          "Emma Rodriguez",
			Bio:               "Singer-songwriter with a soulful voice and heartfelt lyrics. Currently working on my debut album and looking for collaborators who share my passion for authentic music.",
			Location:          "Austin, TX",
			ProfilePictureURL: "/images/profiles/emma.jpg",
			HeaderImageURL:    "/images/headers/concert.jpg",
			IsVerified:        false,
			SocialMedia:       user.SocialMedia{Spotify: "emmarodriguezmusic", Instagram: "@emma_sings", YouTube: "EmmaRodriguezOfficial"},
			Skills:            []string{"Vocals", "Songwriting", "Guitar", "Piano"},
			Genres:            []string{"Folk", "Indie", "Alternative"},
			Experience:        "3+ years",
			FollowerCount:     1245,
			FollowingCount:    234,
			Rating:            4.6,
			RatingCount:       18,
			CreatedAt:         ts("2024-01-18T13:00:00Z"),
			UpdatedAt:         ts("2024-01-18T13:00:00Z"),
		},
		{
			ID:                "5",
			UserID:            "5",
			FullName:          "David Kim",
			Bio:               "Brand Partnership Manager at Sony Music. Working with artists to create meaningful brand collaborations that benefit both parties and reach new audiences.",
			Location:          "San Francisco, CA",
			ProfilePictureURL: "/images/profiles/david.jpg",
			HeaderImageURL:    "/images/headers/brand.jpg",
			IsVerified:        true,
			Skills:            []string{"Brand Partnerships", "Marketing Strategy", "Negotiation"},
			Genres:            []string{"Pop", "Electronic", "Hip Hop"},
			Experience:        "8+ years",
			FollowerCount:     654,
			FollowingCount:    321,
			Rating:            4.8,
			RatingCount:       22,
			CreatedAt:         ts("2024-01-19T14:00:00Z"),
			UpdatedAt:         ts("2024-01-19T14:00:00Z"),
		},
		{
			ID:                "6",
			UserID:            "6",
			FullName:          "Lisa Park",
			Bio:               "Content Creator Manager at Digital Arts Agency. Specializing in helping musicians create engaging content and grow their digital presence across platforms.",
			Location:          "Miami, FL",
			ProfilePictureURL: "/images/profiles/lisa.jpg",
			HeaderImageURL:    "/images/headers/content.jpg",
			IsVerified:        true,
			SocialMedia:       user.SocialMedia{Instagram: "@lisapark_agency"},
			Skills:            []string{"Content Strategy", "Video Editing", "Social Media Marketing", "Analytics"},
			Genres:            []string{"Latin", "Pop", "R&B"},
			Experience:        "6+ years",
			FollowerCount:     987,
			FollowingCount:    445,
			Rating:            4.7,
			RatingCount:       31,
			CreatedAt:         ts("2024-01-20T15:00:00Z"),
			UpdatedAt:         ts("2024-01-20T15:00:00Z"),
		},
		{
			ID:                "7",
			UserID:            "7",
			FullName:          "Carlos Rivera",
			Bio:               "Beat maker and hip-hop producer from Chicago. Creating fire beats for talented rappers and singers. Let me help bring your vision to life with my production skills.",
			Location:          "Chicago, IL",
			ProfilePictureURL: "/images/profiles/carlos.jpg",
			HeaderImageURL:    "/images/headers/hiphop.jpg",
			IsVerified:        false,
			SocialMedia:       user.SocialMedia{SoundCloud: "carlosbeats", Instagram: "@carlos_produces"},
			Skills:            []string{"Music Production", "Beat Making", "Mixing"},
			Genres:            []string{"Hip Hop", "R&B", "Trap"},
			Experience:        "4+ years",
			FollowerCount:     1567,
			FollowingCount:    287,
			Rating:            4.5,
			RatingCount:       25,
			CreatedAt:         ts("2024-01-21T16:00:00Z"),
			UpdatedAt:         ts("2024-01-21T16:00:00Z"),
		},
		{
			ID:                "8",
			UserID:            "8",
			FullName:          "Maya Johnson",
			Bio:               "Professional vocalist with extensive experience in jazz and soul music. Available for session work, collaborations, and live performances. Let my voice elevate your project.",
			Location:          "Seattle, WA",
			ProfilePictureURL: "/images/profiles/maya.jpg",
			HeaderImageURL:    "/images/headers/jazz.jpg",
			IsVerified:        true,
			SocialMedia:       user.SocialMedia{Spotify: "mayajohnsonvocals", YouTube: "MayaJohnsonMusic"},
			Skills:            []string{"Vocals", "Songwriting", "Performance"},
			Genres:            []string{"Jazz", "Soul", "R&B", "Blues"},
			Experience:        "10+ years",
			FollowerCount:     3245,
			FollowingCount:    198,
			Rating:            4.9,
			RatingCount:       67,
			CreatedAt:         ts("2024-01-22T17:00:00Z"),
			UpdatedAt:         ts("2024-01-22T17:00:00Z"),
		},
	}
}

func Projects() []project.Project {
	return []project.Project{
		{
			ID:             "1",
			Title:          "Looking for Vocalist for Electronic Pop Track",
			Description:    "I have an instrumental electronic pop track that needs a powerful vocal performance. The song has a dreamy, atmospheric vibe with driving beats. Looking for someone with experience in pop vocals who can bring emotional depth to the lyrics.",
			CreatorID:      "1",
			CreatorName:    "Alex Martinez",
			RequiredSkills: []string{"Vocals", "Songwriting"},
			Genres:         []string{"Electronic", "Pop"},
			Budget:         &project.Budget{Min: 500, Max: 1000},
			Deadline:       day("2024-07-01"),
			Status:         project.StatusOpen,
			Applicants:     []string{"4", "8"},
			CreatedAt:      ts("2024-06-10T14:30:00Z"),
			UpdatedAt:      ts("2024-06-10T14:30:00Z"),
		},
		{
			ID:             "2",
			Title:          "Hip-Hop Artist Needed for Brand Campaign",
			Description:    "Our client is looking for an up-and-coming hip-hop artist for a summer brand campaign. The project involves creating original music for commercials and social media content. Great opportunity for exposure and paid collaboration.",
			CreatorID:      "2",
			CreatorName:    "Sarah Chen",
			RequiredSkills: []string{"Vocals", "Performance", "Content Creation"},
			Genres:         []string{"Hip Hop"},
			Budget:         &project.Budget{Min: 2000, Max: 5000},
			Deadline:       day("2024-06-30"),
			Status:         project.StatusOpen,
			Applicants:     []string{"7"},
			CreatedAt:      ts("2024-06-12T10:15:00Z"),
			UpdatedAt:      ts("2024-06-12T10:15:00Z"),
		},
		{
			ID:             "3",
			Title:          "Seeking Acoustic Guitar Player for Folk Album",
			Description:    "Working on my debut folk album and need a skilled acoustic guitar player for several tracks. The style is intimate and storytelling-focused. Looking for someone who can complement the emotional narrative of the songs.",
			CreatorID:      "4",
			CreatorName:    "Emma Rodriguez",
			RequiredSkills: []string{"Guitar", "Folk Music"},
			Genres:         []string{"Folk", "Indie"},
			Budget:         &project.Budget{Min: 300, Max: 600},
			Deadline:       day("2024-07-15"),
			Status:         project.StatusOpen,
			Applicants:     []string{},
			CreatedAt:      ts("2024-06-14T16:45:00Z"),
			UpdatedAt:      ts("2024-06-14T16:45:00Z"),
		},
		{
			ID:             "4",
			Title:          "Beat Producer for R&B Collaboration",
			Description:    "Jazz vocalist looking to explore R&B territory. Need a producer who can create smooth, soulful beats that will complement my vocal style. Open to creative experimentation and fusion of genres.",
			CreatorID:      "8",
			CreatorName:    "Maya Johnson",
			RequiredSkills: []string{"Music Production", "Beat Making"},
			Genres:         []string{"R&B", "Soul", "Jazz"},
			Budget:         &project.Budget{Min: 400, Max: 800},
			Status:         project.StatusOpen,
			Applicants:     []string{"1", "7"},
			CreatedAt:      ts("2024-06-16T12:20:00Z"),
			UpdatedAt:      ts("2024-06-16T12:20:00Z"),
		},
		{
			ID:             "5",
			Title:          "Music Video Content Creator Needed",
			Description:    "Looking for a content creator to help develop social media strategy and create engaging video content for an upcoming single release. Experience with TikTok and Instagram reels preferred.",
			CreatorID:      "6",
			CreatorName:    "Lisa Park",
			RequiredSkills: []string{"Video Editing", "Content Creation", "Social Media Marketing"},
			Genres:         []string{"Pop", "Latin"},
			Budget:         &project.Budget{Min: 800, Max: 1500},
			Deadline:       day("2024-06-28"),
			Status:         project.StatusInProgress,
			Applicants:     []string{"2"},
			CreatedAt:      ts("2024-06-08T09:30:00Z"),
			UpdatedAt:      ts("2024-06-15T14:20:00Z"),
		},
	}
}

// Messages are the threads of Emma Rodriguez (user 4) with Alex, Maya and
// Carlos, oldest first within each conversation.
func Messages() []message.Message {
	return []message.Message{
		{ID: "1", ConversationID: "1", SenderID: "1", ReceiverID: "4", Content: "Hey! I loved your latest track. Would you be interested in collaborating on a remix?", Timestamp: ts("2024-06-18T10:30:00Z"), IsRead: true},
		{ID: "2", ConversationID: "1", SenderID: "4", ReceiverID: "1", Content: "Thank you so much! I would love to collaborate. What did you have in mind?", Timestamp: ts("2024-06-18T10:35:00Z"), IsRead: true},
		{ID: "3", ConversationID: "1", SenderID: "1", ReceiverID: "4", Content: `I was thinking we could create an electronic remix of your folk track "Whispered Dreams". I think it could really add a new dimension to the song.`, Timestamp: ts("2024-06-18T10:40:00Z"), IsRead: false},
		{ID: "4", ConversationID: "2", SenderID: "4", ReceiverID: "8", Content: "Sounds great! When can we schedule a call to discuss the project details?", Timestamp: ts("2024-06-18T09:15:00Z"), IsRead: true},
		{ID: "5", ConversationID: "3", SenderID: "7", ReceiverID: "4", Content: "Thanks for reaching out! I am definitely interested in working together.", Timestamp: ts("2024-06-17T16:45:00Z"), IsRead: true},
	}
}

// Conversations derives each thread's last message from Messages.
func Conversations() []message.Conversation {
	convs := []message.Conversation{
		{ID: "1", Participants: []string{"4", "1"}},
		{ID: "2", Participants: []string{"4", "8"}},
		{ID: "3", Participants: []string{"4", "7"}},
	}
	msgs := Messages()
	for i := range convs {
		for j := range msgs {
			if msgs[j].ConversationID != convs[i].ID {
				continue
			}
			m := msgs[j]
			if convs[i].LastMessage == nil || m.Timestamp.After(convs[i].LastMessage.Timestamp) {
				convs[i].LastMessage = &m
				convs[i].UpdatedAt = m.Timestamp
			}
		}
	}
	return convs
}
