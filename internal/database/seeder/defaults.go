package seeder

func Defaults() []Seeder {
	return []Seeder{
		AccountsSeeder{},
		ProjectsSeeder{},
		ConversationsSeeder{},
	}
}
