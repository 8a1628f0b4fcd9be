package repository

import (
	"fmt"

	"EmojiFM/logger"
	"EmojiFM/model"
)

// seedMoods is the initial emoji → genre table. The list carries a few
// emojis more than once (⚡, ⚙️, 💥, …) from successive expansions; the
// unique emoji constraint keeps the first occurrence and the rest are
// skipped at seed time.
var seedMoods = []model.EmojiMood{
	{Emoji: "😄", MoodDescription: "Alegre", GenreHint: "Pop"},
	{Emoji: "🎉", MoodDescription: "Fiesta", GenreHint: "Dance"},
	{Emoji: "🥳", MoodDescription: "Celebración", GenreHint: "Reggaeton"},
	{Emoji: "🌧️", MoodDescription: "Melancólico", GenreHint: "Balada"},
	{Emoji: "😢", MoodDescription: "Triste", GenreHint: "Blues"},
	{Emoji: "💔", MoodDescription: "Desamor", GenreHint: "Indie"},
	{Emoji: "💪", MoodDescription: "Enérgico", GenreHint: "Rock"},
	{Emoji: "⚡", MoodDescription: "Intenso", GenreHint: "Electrónica"},
	{Emoji: "🔥", MoodDescription: "Motivador", GenreHint: "Hip Hop"},
	{Emoji: "🧘‍♀️", MoodDescription: "Relajado", GenreHint: "Jazz"},
	{Emoji: "😎", MoodDescription: "Confiado", GenreHint: "R&B"},
	{Emoji: "🤔", MoodDescription: "Pensativo", GenreHint: "Clásica"},
	{Emoji: "😴", MoodDescription: "Tranquilo", GenreHint: "Ambient"},
	{Emoji: "🤩", MoodDescription: "Emocionado", GenreHint: "K-Pop"},
	{Emoji: "🎸", MoodDescription: "Rebelde", GenreHint: "Heavy Metal"},
	{Emoji: "🤠", MoodDescription: "Campestre", GenreHint: "Country"},
	{Emoji: "🌲", MoodDescription: "Natural", GenreHint: "Folk"},
	{Emoji: "🎷", MoodDescription: "Sofisticado", GenreHint: "Smooth Jazz"},
	{Emoji: "🎺", MoodDescription: "Marcha", GenreHint: "Big Band"},
	{Emoji: "🎤", MoodDescription: "Vocal", GenreHint: "Soul"},
	{Emoji: "🕺", MoodDescription: "Groovy", GenreHint: "Funk"},
	{Emoji: "💿", MoodDescription: "Retro", GenreHint: "Disco"},
	{Emoji: "💥", MoodDescription: "Agresivo", GenreHint: "Punk"},
	{Emoji: "🌫️", MoodDescription: "Distorsionado", GenreHint: "Grunge"},
	{Emoji: "⛓️", MoodDescription: "Pesado", GenreHint: "Metalcore"},
	{Emoji: "💀", MoodDescription: "Extremo", GenreHint: "Death Metal"},
	{Emoji: "🌑", MoodDescription: "Oscuro", GenreHint: "Black Metal"},
	{Emoji: "🏰", MoodDescription: "Épico", GenreHint: "Symphonic Metal"},
	{Emoji: "🌀", MoodDescription: "Complejo", GenreHint: "Progressive Rock"},
	{Emoji: "🌈", MoodDescription: "Alucinante", GenreHint: "Psychedelic Rock"},
	{Emoji: "☕", MoodDescription: "Acogedor", GenreHint: "Acoustic"},
	{Emoji: "🎧", MoodDescription: "Relajante", GenreHint: "Lo-fi"},
	{Emoji: "🌊", MoodDescription: "Ondulante", GenreHint: "Chillwave"},
	{Emoji: "💾", MoodDescription: "Nostálgico", GenreHint: "Synthwave"},
	{Emoji: "🌌", MoodDescription: "Trascendente", GenreHint: "Trance"},
	{Emoji: "🏠", MoodDescription: "Ritmo", GenreHint: "House"},
	{Emoji: "⚙️", MoodDescription: "Mecánico", GenreHint: "Techno"},
	{Emoji: "🤖", MoodDescription: "Bajo Pesado", GenreHint: "Dubstep"},
	{Emoji: "🥁", MoodDescription: "Percusivo", GenreHint: "Drum & Bass"},
	{Emoji: "🇯🇲", MoodDescription: "Caribeño", GenreHint: "Reggae"},
	{Emoji: "🌶️", MoodDescription: "Picante", GenreHint: "Salsa"},
	{Emoji: "💃🏽", MoodDescription: "Apasionado", GenreHint: "Flamenco"},
	{Emoji: "🙏", MoodDescription: "Espiritual", GenreHint: "Gospel"},
	{Emoji: "🎭", MoodDescription: "Teatral", GenreHint: "Opera"},
	{Emoji: "🌍", MoodDescription: "Global", GenreHint: "World Music"},
	{Emoji: "🇮🇳", MoodDescription: "Bollywood", GenreHint: "Bollywood"},
	{Emoji: "🎌", MoodDescription: "Anime", GenreHint: "Anime OST"},
	{Emoji: "🎮", MoodDescription: "Gamer", GenreHint: "Video Game OST"},
	{Emoji: "🎬", MoodDescription: "Cinemático", GenreHint: "Film Score"},
	{Emoji: "👶", MoodDescription: "Infantil", GenreHint: "Childrens Music"},
	{Emoji: "🎄", MoodDescription: "Navideño", GenreHint: "Holiday Music"},
	{Emoji: "🗣️", MoodDescription: "Narrativo", GenreHint: "Spoken Word"},
	{Emoji: "😂", MoodDescription: "Cómico", GenreHint: "Comedy"},
	{Emoji: "💸", MoodDescription: "Moderno", GenreHint: "Trap"},
	{Emoji: "🔪", MoodDescription: "Intenso Urbano", GenreHint: "Drill"},
	{Emoji: "🇬🇧", MoodDescription: "Urbano Británico", GenreHint: "Grime"},
	{Emoji: "🇰🇷", MoodDescription: "R&B Coreano", GenreHint: "K-R&B"},
	{Emoji: "🇯🇵", MoodDescription: "Rock Japonés", GenreHint: "J-Rock"},
	{Emoji: "🛹", MoodDescription: "Juvenil", GenreHint: "Pop Punk"},
	{Emoji: "🖤", MoodDescription: "Melancólico Alternativo", GenreHint: "Emo"},
	{Emoji: "🪕", MoodDescription: "Folk Punk", GenreHint: "Folk Punk"},
	{Emoji: "💡", MoodDescription: "Indie Pop", GenreHint: "Indie Pop"},
	{Emoji: "☁️", MoodDescription: "Dream Pop", GenreHint: "Dream Pop"},
	{Emoji: "🏛️", MoodDescription: "Neoclásico", GenreHint: "Neoclassical"},
	{Emoji: "🎶", MoodDescription: "Canto", GenreHint: "Choral"},
	{Emoji: "🧘‍♂️", MoodDescription: "Paz", GenreHint: "New Age"},
	{Emoji: "🧖‍♀️", MoodDescription: "Relajación", GenreHint: "Spa Music"},
	{Emoji: "🍃", MoodDescription: "Sonidos Naturales", GenreHint: "Nature Sounds"},
	{Emoji: "👂", MoodDescription: "ASMR", GenreHint: "ASMR"},
	{Emoji: "📚", MoodDescription: "Educativo", GenreHint: "Educational Music"},
	{Emoji: "🤪", MoodDescription: "Novedad", GenreHint: "Novelty Songs"},
	{Emoji: "✊", MoodDescription: "Protesta", GenreHint: "Political Hip Hop"},
	{Emoji: "⚔️", MoodDescription: "Épico Metal", GenreHint: "Power Metal"},
	{Emoji: "🤘", MoodDescription: "Viking Metal", GenreHint: "Viking Metal"},
	{Emoji: "🏴‍☠️", MoodDescription: "Pirate Metal", GenreHint: "Pirate Metal"},
	{Emoji: "🏰", MoodDescription: "Medieval Metal", GenreHint: "Medieval Metal"},
	{Emoji: "🌳", MoodDescription: "Pagan Metal", GenreHint: "Pagan Metal"},
	{Emoji: "⚡", MoodDescription: "Blackened Thrash Metal", GenreHint: "Blackened Thrash Metal"},
	{Emoji: "⚙️", MoodDescription: "Technical Death Metal", GenreHint: "Technical Death Metal"},
	{Emoji: "💥", MoodDescription: "Brutal Death Metal", GenreHint: "Brutal Death Metal"},
	{Emoji: "👊", MoodDescription: "Slam Death Metal", GenreHint: "Slam Death Metal"},
	{Emoji: "🌀", MoodDescription: "Progressive Death Metal", GenreHint: "Progressive Death Metal"},
	{Emoji: "🎶", MoodDescription: "Melodic Death Metal", GenreHint: "Melodic Death Metal"},
	{Emoji: "⚰️", MoodDescription: "Funeral Doom Metal", GenreHint: "Funeral Doom Metal"},
	{Emoji: "☁️", MoodDescription: "Atmospheric Black Metal", GenreHint: "Atmospheric Black Metal"},
	{Emoji: "😭", MoodDescription: "Depressive Suicidal Black Metal (DSBM)", GenreHint: "Depressive Suicidal Black Metal (DSBM)"},
	{Emoji: "🌌", MoodDescription: "Post-Black Metal", GenreHint: "Post-Black Metal"},
	{Emoji: "🔪", MoodDescription: "Raw Black Metal", GenreHint: "Raw Black Metal"},
	{Emoji: "🌫️", MoodDescription: "Blackgaze", GenreHint: "Blackgaze"},
	{Emoji: "⚙️", MoodDescription: "Industrial Black Metal", GenreHint: "Industrial Black Metal"},
	{Emoji: "🌲", MoodDescription: "Folk Black Metal", GenreHint: "Folk Black Metal"},
	{Emoji: "💣", MoodDescription: "War Metal", GenreHint: "War Metal"},
	{Emoji: "👊", MoodDescription: "Powerviolence", GenreHint: "Powerviolence"},
	{Emoji: "💥", MoodDescription: "No Wave", GenreHint: "No Wave"},
	{Emoji: "🎨", MoodDescription: "Free Improvisation", GenreHint: "Free Improvisation"},
	{Emoji: "🧪", MoodDescription: "Experimental Rock", GenreHint: "Experimental Rock"},
	{Emoji: "🤘", MoodDescription: "Avant-garde Metal", GenreHint: "Avant-garde Metal"},
	{Emoji: "嗡", MoodDescription: "Drone Metal", GenreHint: "Drone Metal"},
	{Emoji: "🧪", MoodDescription: "Sludgecore", GenreHint: "Sludgecore"},
	{Emoji: "🌌", MoodDescription: "Post-Metal", GenreHint: "Post-Metal"},
	{Emoji: "🌿", MoodDescription: "Stoner Doom", GenreHint: "Stoner Doom"},
	{Emoji: "🍄", MoodDescription: "Psychedelic Doom", GenreHint: "Psychedelic Doom"},
	{Emoji: "🕯️", MoodDescription: "Traditional Doom Metal", GenreHint: "Traditional Doom Metal"},
	{Emoji: "⚔️", MoodDescription: "Epic Doom Metal", GenreHint: "Epic Doom Metal"},
	{Emoji: "🌲", MoodDescription: "Folk Doom Metal", GenreHint: "Folk Doom Metal"},
	{Emoji: "🌀", MoodDescription: "Progressive Doom Metal", GenreHint: "Progressive Doom Metal"},
	{Emoji: "🧪", MoodDescription: "Sludge Doom Metal", GenreHint: "Sludge Doom Metal"},
}

// SeedEmojiMoods populates the mood table with the initial emoji/genre
// mapping. It only runs when the table is empty, so re-deploys and
// restarts never duplicate or overwrite curated data.
func SeedEmojiMoods(repo EmojiMoodRepository) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to check emoji mood count before seeding: %w", err)
	}
	if count > 0 {
		logger.Info("emoji_moods table already contains data, skipping seed",
			logger.Int64("count", count))
		return nil
	}

	// Keep the first occurrence of each emoji; later expansions of the
	// list reused a few of them for other genres.
	seen := make(map[string]struct{}, len(seedMoods))
	unique := make([]model.EmojiMood, 0, len(seedMoods))
	for _, mood := range seedMoods {
		if _, ok := seen[mood.Emoji]; ok {
			continue
		}
		seen[mood.Emoji] = struct{}{}
		unique = append(unique, mood)
	}

	inserted, err := repo.CreateBatch(unique)
	if err != nil {
		return fmt.Errorf("failed to seed emoji moods: %w", err)
	}

	logger.Info("seeded initial emoji mood data",
		logger.Int("inserted", inserted),
		logger.Int("skippedDuplicates", len(seedMoods)-inserted))
	return nil
}
