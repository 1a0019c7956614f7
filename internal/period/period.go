// Package period defines the closed catalog of historical periods the
// library is organized around. The set is fixed at build time: storage tags
// rows with a period slug and selection iterates All(), so adding a period is
// a change to this file only.
package period

import "fmt"

// Period is a stable slug identifying one historical era. Slugs are what get
// persisted, so they must never change once released; display labels may.
type Period string

const (
	Prehistoric      Period = "prehistoric"
	AncientEgypt     Period = "ancient-egypt"
	AncientGreece    Period = "ancient-greece"
	AncientRome      Period = "ancient-rome"
	AncientChina     Period = "ancient-china"
	Byzantine        Period = "byzantine"
	Medieval         Period = "medieval"
	Viking           Period = "viking"
	Islamic          Period = "islamic"
	Mongol           Period = "mongol"
	Renaissance      Period = "renaissance"
	AgeOfExploration Period = "age-of-exploration"
	Colonial         Period = "colonial"
	Enlightenment    Period = "enlightenment"
	Industrial       Period = "industrial"
	Nineteenth       Period = "19th-century"
	WorldWarOne      Period = "world-war-1"
	Interwar         Period = "interwar"
	WorldWarTwo      Period = "world-war-2"
	ColdWar          Period = "cold-war"
	Contemporary     Period = "contemporary"
)

var all = []Period{
	Prehistoric,
	AncientEgypt,
	AncientGreece,
	AncientRome,
	AncientChina,
	Byzantine,
	Medieval,
	Viking,
	Islamic,
	Mongol,
	Renaissance,
	AgeOfExploration,
	Colonial,
	Enlightenment,
	Industrial,
	Nineteenth,
	WorldWarOne,
	Interwar,
	WorldWarTwo,
	ColdWar,
	Contemporary,
}

// All returns every period in catalog order. Callers must not mutate the
// returned slice.
func All() []Period {
	return all
}

// Parse validates a stored slug against the catalog.
func Parse(s string) (Period, error) {
	p := Period(s)
	if _, ok := info[p]; !ok {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}

func (p Period) String() string { return string(p) }

// Label returns the human-readable name shown to readers.
func (p Period) Label() string { return info[p].label }

// DateRange returns the era's span as display text. Ranges are strings
// because some eras predate written history.
func (p Period) DateRange() string { return info[p].dates }

// SearchPhrases returns the curated queries used to bias acquisition toward
// this era. Order matters: earlier phrases are tried first during ingestion.
func (p Period) SearchPhrases() []string { return info[p].phrases }

type periodInfo struct {
	label   string
	dates   string
	phrases []string
}

var info = map[Period]periodInfo{
	Prehistoric: {
		label: "Prehistoric",
		dates: "before written history",
		phrases: []string{
			"Prehistoric archaeology", "Stone Age", "Ice Age", "Cave paintings", "Neanderthal",
			"Hunter gatherer", "Megalith", "Stonehenge", "Paleolithic", "Neolithic",
			"Early humans", "Fossil humans", "Ancient tools", "Prehistoric art", "Mammoth",
		},
	},
	AncientEgypt: {
		label: "Ancient Egypt",
		dates: "3100 BCE - 30 BCE",
		phrases: []string{
			"Ancient Egypt", "Pharaoh", "Pyramid", "Mummy", "Hieroglyph",
			"Tutankhamun", "Cleopatra", "Nile River", "Sphinx", "Egyptian mythology",
			"Egyptian medicine", "Papyrus", "Egyptian gods", "Valley of the Kings", "Egyptian art",
		},
	},
	AncientGreece: {
		label: "Ancient Greece",
		dates: "800 BCE - 146 BCE",
		phrases: []string{
			"Ancient Greece", "Alexander the Great", "Greek philosophy", "Olympic Games", "Sparta",
			"Athens", "Greek mythology", "Parthenon", "Socrates", "Plato",
			"Aristotle", "Greek democracy", "Greek theater", "Greek warfare", "Greek art",
		},
	},
	AncientRome: {
		label: "Ancient Rome",
		dates: "753 BCE - 476 CE",
		phrases: []string{
			"Roman Empire", "Julius Caesar", "Augustus", "Gladiator", "Colosseum",
			"Roman legion", "Pompeii", "Roman engineering", "Roman law", "Constantine",
			"Fall of Rome", "Roman Senate", "Roman gods", "Roman architecture", "Hadrian's Wall",
		},
	},
	AncientChina: {
		label: "Ancient China",
		dates: "2070 BCE - 220 CE",
		phrases: []string{
			"Ancient China", "Great Wall of China", "Chinese dynasty", "Confucius", "Chinese emperor",
			"Silk Road", "Chinese philosophy", "Chinese invention", "Terracotta Army", "Chinese medicine",
			"Chinese art", "Chinese writing", "Chinese warfare", "Forbidden City", "Chinese mythology",
		},
	},
	Byzantine: {
		label: "Byzantine",
		dates: "330 - 1453 CE",
		phrases: []string{
			"Byzantine Empire", "Constantinople", "Byzantine emperor", "Hagia Sophia", "Justinian",
			"Byzantine art", "Eastern Orthodox", "Byzantine military", "Byzantine culture", "Crusades",
			"Ottoman conquest", "Byzantine architecture", "Byzantine politics", "Byzantine trade", "Greek fire",
		},
	},
	Medieval: {
		label: "Medieval",
		dates: "500 - 1500 CE",
		phrases: []string{
			"Middle Ages", "Medieval Europe", "Knight", "Castle", "Feudalism",
			"Crusades", "Black Death", "Medieval warfare", "Medieval art", "Gothic architecture",
			"Medieval literature", "Viking raids", "Medieval trade", "Medieval technology", "Medieval church",
		},
	},
	Viking: {
		label: "Viking",
		dates: "793 - 1066 CE",
		phrases: []string{
			"Viking", "Norse mythology", "Viking exploration", "Viking ship", "Viking raid",
			"Viking settlement", "Norse saga", "Viking culture", "Viking warfare", "Leif Erikson",
			"Viking Age", "Norse gods", "Runes", "Viking trade", "Viking society",
		},
	},
	Islamic: {
		label: "Islamic Golden Age",
		dates: "610 - 1258 CE",
		phrases: []string{
			"Islamic civilization", "Islamic Golden Age", "Islamic conquest", "Caliphate", "Islamic science",
			"Islamic art", "Islamic architecture", "Islamic philosophy", "Muhammad", "Quran",
			"Islamic empire", "Islamic trade", "Islamic medicine", "Islamic mathematics", "Mosque",
		},
	},
	Mongol: {
		label: "Mongol Empire",
		dates: "1206 - 1368 CE",
		phrases: []string{
			"Mongol Empire", "Genghis Khan", "Mongol conquest", "Mongol warfare", "Silk Road",
			"Kublai Khan", "Mongol culture", "Mongol society", "Mongol military", "Yuan dynasty",
			"Mongol invasion", "Mongol administration", "Mongol trade", "Mongol religion", "Pax Mongolica",
		},
	},
	Renaissance: {
		label: "Renaissance",
		dates: "1300 - 1600 CE",
		phrases: []string{
			"Renaissance", "Leonardo da Vinci", "Michelangelo", "Renaissance art", "Humanism",
			"Italian Renaissance", "Renaissance science", "Printing press", "Renaissance literature", "Medici family",
			"Renaissance architecture", "Renaissance philosophy", "Renaissance technology", "Renaissance exploration", "Renaissance music",
		},
	},
	AgeOfExploration: {
		label: "Age of Exploration",
		dates: "1400 - 1600 CE",
		phrases: []string{
			"Age of Exploration", "Christopher Columbus", "Vasco da Gama", "Magellan", "Spanish conquest",
			"Portuguese exploration", "New World", "European exploration", "Maritime exploration", "Colonial empire",
			"Navigation", "Conquistador", "Trading post", "Exploration technology", "Cartography",
		},
	},
	Colonial: {
		label: "Colonial Era",
		dates: "1492 - 1800 CE",
		phrases: []string{
			"Colonial America", "British Empire", "Spanish Empire", "French colonial empire", "Dutch Empire",
			"Colonization", "Colonial society", "Colonial economy", "Colonial culture", "Colonial trade",
			"Colonial administration", "Colonial resistance", "Colonial expansion", "Colonial settlement", "Mercantilism",
		},
	},
	Enlightenment: {
		label: "Enlightenment",
		dates: "1685 - 1815 CE",
		phrases: []string{
			"Age of Enlightenment", "Enlightenment philosophy", "Voltaire", "John Locke", "Scientific Revolution",
			"Enlightenment thinkers", "Political philosophy", "Natural rights", "Social contract", "Reason",
			"Enlightenment science", "Encyclopedia", "Enlightenment politics", "Religious tolerance", "Progress",
		},
	},
	Industrial: {
		label: "Industrial Revolution",
		dates: "1760 - 1840 CE",
		phrases: []string{
			"Industrial Revolution", "Steam engine", "Factory system", "Industrial technology", "Railway",
			"Industrial society", "Industrial workers", "Textile industry", "Coal mining", "Iron industry",
			"Industrial cities", "Labor movement", "Industrial capitalism", "Mass production", "Industrial innovation",
		},
	},
	Nineteenth: {
		label: "19th Century",
		dates: "1801 - 1900 CE",
		phrases: []string{
			"19th century", "Victorian era", "Nationalism", "Romanticism", "Scientific progress",
			"Social reform", "Abolition", "Women's rights", "Labor rights", "Political revolution",
			"Cultural change", "Technological advancement", "Economic growth", "Imperial expansion", "Social movement",
		},
	},
	WorldWarOne: {
		label: "World War I",
		dates: "1914 - 1918 CE",
		phrases: []string{
			"World War I", "Trench warfare", "Western Front", "Russian Revolution", "Treaty of Versailles",
			"World War 1 technology", "Military strategy", "War propaganda", "Home front", "War casualties",
			"Assassination of Archduke", "Central Powers", "Allied Powers", "Battle of the Somme", "Armistice",
		},
	},
	Interwar: {
		label: "Interwar Period",
		dates: "1918 - 1939 CE",
		phrases: []string{
			"Interwar period", "Great Depression", "Rise of fascism", "Weimar Republic", "Soviet Union",
			"Jazz Age", "Roaring Twenties", "Stock market crash", "New Deal", "Appeasement",
			"League of Nations", "Cultural change", "Political instability", "Economic crisis", "Social change",
		},
	},
	WorldWarTwo: {
		label: "World War II",
		dates: "1939 - 1945 CE",
		phrases: []string{
			"World War II", "Holocaust", "D-Day", "Pearl Harbor", "Battle of Britain",
			"Nazi Germany", "Pacific War", "Resistance movement", "War crimes", "Atomic bomb",
			"Blitzkrieg", "Eastern Front", "Home front", "War technology", "Liberation",
		},
	},
	ColdWar: {
		label: "Cold War",
		dates: "1947 - 1991 CE",
		phrases: []string{
			"Cold War", "Iron Curtain", "Berlin Wall", "Cuban Missile Crisis", "Space Race",
			"McCarthyism", "Nuclear arms race", "Proxy war", "Decolonization", "Détente",
			"Soviet Union", "NATO", "Warsaw Pact", "Korean War", "Vietnam War",
		},
	},
	Contemporary: {
		label: "Contemporary",
		dates: "1991 - present",
		phrases: []string{
			"Contemporary history", "Globalization", "Digital revolution", "Fall of communism", "Terrorism",
			"Climate change", "Internet", "Social media", "Economic integration", "Cultural diversity",
			"Technological advancement", "Political change", "Social transformation", "Environmental issues", "Human rights",
		},
	},
}
