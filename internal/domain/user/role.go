package user

// Role is the professional category chosen at registration.
type Role string

const (
	RoleMusicCollaborator       Role = "music_collaborator"
	RoleInfluencerMarketer      Role = "influencer_marketer"
	RoleRecordLabelScout        Role = "record_label_scout"
	RoleBrandSponsorshipManager Role = "brand_sponsorship_manager"
	RoleContentCreatorManager   Role = "content_creator_manager"
)

type roleInfo struct {
	displayName string
	description string
}

var roles = map[Role]roleInfo{
	RoleMusicCollaborator: {
		displayName: "Music Collaborator",
		description: "Connect with other musicians and create amazing music together",
	},
	RoleInfluencerMarketer: {
		displayName: "Influencer Marketer",
		description: "Discover talented creators for authentic influencer campaigns",
	},
	RoleRecordLabelScout: {
		displayName: "Record Label Scout",
		description: "Find and sign the next generation of musical talent",
	},
	RoleBrandSponsorshipManager: {
		displayName: "Brand Sponsorship Manager",
		description: "Connect brands with creators for meaningful partnerships",
	},
	RoleContentCreatorManager: {
		displayName: "Content Creator Manager",
		description: "Manage and develop content creators across platforms",
	},
}

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{
		RoleMusicCollaborator,
		RoleInfluencerMarketer,
		RoleRecordLabelScout,
		RoleBrandSponsorshipManager,
		RoleContentCreatorManager,
	}
}

func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// RoleDisplayName returns the badge label for r, or "" for unknown roles.
func RoleDisplayName(r Role) string {
	return roles[r].displayName
}

// RoleDescription returns the one-line pitch for r, or "" for unknown roles.
func RoleDescription(r Role) string {
	return roles[r].description
}
