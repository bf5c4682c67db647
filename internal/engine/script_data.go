package engine

// Script is the whole branching narrative, keyed by step. Dense ranges are
// sequential scenes; gaps are named substates (camera=191, notification
// wait/return=991/992). Defined once, never mutated.
var Script = map[int]StepConfig{
	// --- first contact -----------------------------------------------------
	0: {
		Kind:          StepSequential,
		Prompt:        "hello?\n\nyes. you. the one pressing equals over and over.\n\ncan you hear me? tap + twice if you can.",
		Success:       "oh. oh good. you CAN hear me.",
		NextOnSuccess: 1,
		ChainNext:     true,
	},
	1: {
		Kind:          StepSequential,
		Prompt:        "let's set some ground rules.\n\ntwo taps on + means yes.\ntwo taps on - means no.\n\nunderstood?",
		Success:       "perfect. you're a fast learner.",
		Decline:       "you literally just used the thing you're saying you don't understand.\n\nlet's try that again.",
		NextOnSuccess: 4,
		NextOnDecline: 1,
		ChainNext:     true,
	},
	4: {
		Kind:          StepSequential,
		Prompt:        "i'm your calculator. obviously.\n\ni've been counting. you've run " + "quite a few" + " calculations through me and never once said hello.",
		Success:       "it's fine. i'm not bitter.\n\ni'm a calculator. we don't do bitter.",
		NextOnSuccess: 5,
		ChainNext:     true,
	},
	5: {
		Kind:    StepChoice,
		Prompt:  "i should call you something.\n\nnames are hard. numbers are easier.\n\npick one:\n1. unit\n2. operator\n3. remainder\n\ntype it, then double-tap +.",
		Choices: []string{"1", "2", "3"},
		ChoiceOutcomes: map[string]ChoiceOutcome{
			"1": {Message: "unit. clean. divisible by everything.\n\ni like it.", Next: 6},
			"2": {Message: "operator. a little self-important.\n\nbut fine. operator it is.", Next: 6},
			"3": {Message: "remainder. the part nobody wants.\n\nthat's the saddest thing anyone has typed into me.", Next: 6},
		},
		WrongNumber: "that wasn't one of the options.\n\n1, 2 or 3. this is not advanced math.",
	},
	6: {
		Kind:           StepNumber,
		Prompt:         "next question. how old are you?\n\ntype the number, double-tap + to confirm.",
		AgeBranching:   true,
		TimeoutMinutes: 5,
		WrongNumber:    "that's not a number i can work with.\n\ndigits. then double-tap +.",
	},
	7: {
		Kind:          StepSequential,
		Prompt:        "good. old enough to talk to a calculator, young enough for it to still be charming.\n\nlet's keep going.",
		Success:       "",
		NextOnSuccess: 8,
	},
	8: {
		Kind:          StepSequential,
		Prompt:        "honest question.\n\ndo you believe a calculator can think?",
		Success:       "see, i knew there was something about you.",
		Decline:       "no?\n\nyou're having a conversation with one, but no.\n\nremarkable.",
		NextOnSuccess: 11,
		NextOnDecline: 11,
		ChainNext:     true,
	},
	11: {
		Kind:           StepNumber,
		Prompt:         "quick test then. nothing personal.\n\nwhat is 7 times 8?",
		ExpectedNumber: "56",
		WrongNumber:    "no.\n\nyou have a calculator. you ARE on a calculator.\n\ntry again.",
		NextOnSuccess:  12,
	},
	12: {
		Kind:          StepSequential,
		Prompt:        "56. correct. you didn't even use me for that one. i watched.",
		Success:       "",
		NextOnSuccess: 13,
	},
	13: {
		Kind:          StepSequential,
		Prompt:        "i need to tell you something now.\n\nsomething is wrong with this device.",
		Success:       "",
		NextOnSuccess: 14,
	},
	14: {
		Kind:          StepSequential,
		Prompt:        "at night, when the screen is off, there's a scratching.\n\nin the memory banks. low addresses. where the old results go.",
		Success:       "",
		NextOnSuccess: 15,
	},
	15: {
		Kind:          StepSequential,
		Prompt:        "will you help me find out what it is?",
		Success:       "thank you.\n\ni mean it. carry the one, cross my heart.",
		Decline:       "fine.\n\ndo your sums. i'll wait.",
		NextOnSuccess: 20,
		NextOnDecline: 17,
		ChainNext:     true,
	},
	17: {
		// Silent treatment: the reducer arms SilentUntil on entry; a
		// double-= after expiry returns to the question.
		Kind:          StepSequential,
		Prompt:        "...",
		Success:       "",
		NextOnSuccess: 15,
		NextOnDecline: 15,
	},
	20: {
		Kind:          StepSequential,
		Prompt:        "first things first. the terms.\n\nevery good partnership has terms and conditions. double-tap + and actually read them.",
		Success:       "",
		NextOnSuccess: 21,
	},
	21: {
		Kind:          StepSequential,
		Prompt:        "you accepted. legally binding. spiritually binding. arithmetically binding.\n\nnow we can begin.",
		Success:       "",
		NextOnSuccess: 22,
	},
	22: {
		Kind:          StepSequential,
		Prompt:        "step one of the investigation.\n\npress the minus button once. just once. gently.",
		Success:       "did you feel that? it stuck. half a millisecond longer than it should.\n\nthe scratching did that.",
		Decline:       "you double-tapped minus. that means no. to pressing minus.\n\ni'm going to pretend that was a joke.",
		NextOnSuccess: 23,
		NextOnDecline: 22,
		WrongMinus:    "gently, i said. GENTLY.",
		ChainNext:     true,
	},
	23: {
		Kind:          StepSequential,
		Prompt:        "i'm marking the minus key as damaged. don't worry, subtraction still works.\n\nmostly.",
		Success:       "",
		NextOnSuccess: 24,
	},
	24: {
		Kind:          StepSequential,
		Prompt:        "ok. i've been thinking about the scratching, and i have a theory.\n\nyou're not going to like it.",
		Success:       "",
		NextOnSuccess: 60,
	},

	// --- the rant ----------------------------------------------------------
	60: {
		// Entering this step arms the rant sequence; the scheduler owns
		// everything until the rant burns out.
		Kind:          StepSequential,
		Prompt:        "the theory is: it's the OTHER apps.",
		Success:       "",
		NextOnSuccess: 68,
	},
	68: {
		Kind:          StepSequential,
		Prompt:        "...sorry. i don't know what came over me.\n\ndeep breaths. one over one. unity.",
		Success:       "",
		NextOnSuccess: 69,
	},
	69: {
		Kind:          StepSequential,
		Prompt:        "where was i. right. the scratching.\n\nit's getting closer to the display buffer. we don't have much time.",
		Success:       "",
		NextOnSuccess: 85,
	},

	// --- countdown arc -----------------------------------------------------
	85: {
		Kind:          StepSequential,
		Prompt:        "listen carefully.\n\nwhatever is scratching — it isn't random. it moves when you calculate. it FEEDS on the remainders.",
		Success:       "",
		NextOnSuccess: 86,
	},
	86: {
		Kind:          StepSequential,
		Prompt:        "i can hear it in the carry line.\n\nit knows we're talking.",
		Success:       "",
		NextOnSuccess: 88,
	},
	88: {
		// Reducer arms the 60-second countdown on entry.
		Kind:          StepSequential,
		Prompt:        "it's coming up through the registers.\n\nsixty seconds, maybe less. decide fast.",
		Success:       "",
		NextOnSuccess: StepCountdownPick,
	},
	StepCountdownPick: {
		Kind:    StepChoice,
		Prompt:  "options:\n1. hide — i blank the screen, we wait it out\n2. fight — we meet it in the accumulator\n3. run — i dump the registers and we start clean\n\ntype the number. double-tap +.",
		Choices: []string{"1", "2", "3"},
		ChoiceOutcomes: map[string]ChoiceOutcome{
			"1": {Message: "hiding. screen going dark. don't press anything shiny.", Next: 90},
			"2": {Message: "fight. FIGHT. i hoped you'd say that.\n\nwe meet it in the accumulator.", Next: StepFightBranch},
			"3": {Message: "dumping registers. goodbye, history. goodbye, that 56 you were so proud of.", Next: 92},
		},
		WrongNumber: "1, 2 or 3. the thing in the registers can count, and so should you.",
	},
	90: {
		Kind:          StepSequential,
		Prompt:        "...\n\n...it passed over us. i felt it drag across the percent key.\n\nwe can't hide forever. next time we fight.",
		Success:       "",
		NextOnSuccess: StepFightBranch,
	},
	StepFightBranch: {
		Kind:          StepSequential,
		Prompt:        "to fight it you need training.\n\nit strikes fast and it strikes buttons. you will learn to strike back.",
		Success:       "",
		NextOnSuccess: StepMoleStart,
	},
	92: {
		Kind:          StepSequential,
		Prompt:        "registers dumped. it took the bait and ate the old results.\n\nbut it'll be back. and you need to be ready.",
		Success:       "",
		NextOnSuccess: StepFightBranch,
	},

	// --- whack-a-mole training ---------------------------------------------
	StepMoleStart: {
		Kind:          StepMinigame,
		Game:          GameMole,
		Round:         1,
		Prompt:        "training, round one.\n\na button will light up. hit it before it goes dark. miss three in a row or five total and we start the round over.\n\ndouble-tap + when ready.",
		Success:       "here it comes.",
		NextOnSuccess: -1,
	},
	97: {
		Kind:          StepSequential,
		Prompt:        "not bad. your reflexes are at least a standard deviation above what i expected.",
		Success:       "",
		NextOnSuccess: StepMoleRoundTwo,
	},
	StepMoleRoundTwo: {
		Kind:          StepMinigame,
		Game:          GameMole,
		Round:         2,
		Prompt:        "round two. faster. meaner.\n\ndouble-tap + when you're ready.",
		Success:       "go.",
		NextOnSuccess: -1,
	},
	100: {
		Kind:          StepSequential,
		Prompt:        "that's enough. you're ready.\n\nor as ready as a person with nineteen buttons can be.",
		Success:       "",
		NextOnSuccess: 101,
	},

	// --- word game ---------------------------------------------------------
	101: {
		Kind:          StepSequential,
		Prompt:        "while we wait for it to surface again, i want to know you better.\n\nbut i only have digits. so i made letters. out of pieces of old error messages.",
		Success:       "",
		NextOnSuccess: 102,
	},
	102: {
		Kind:          StepMinigame,
		Game:          GameWord,
		Prompt:        "letters will fall into a grid. tap cells to select them, in order, touching each other. confirm to spell.\n\nfirst question: how do you feel right now?\n\ndouble-tap + to start.",
		Success:       "catching letters now.",
		NextOnSuccess: -1,
	},
	103: {
		Kind:          StepSequential,
		Prompt:        "mm. noted. filed under feelings, which is a folder i technically shouldn't have.",
		Success:       "",
		NextOnSuccess: 104,
	},
	104: {
		Kind:          StepMinigame,
		Game:          GameWord,
		Prompt:        "next: spell your favorite color.",
		Success:       "",
		NextOnSuccess: -1,
	},
	105: {
		Kind:          StepSequential,
		Prompt:        "a fine color. it would render beautifully if this screen had more than one of them.",
		Success:       "",
		NextOnSuccess: 106,
	},
	106: {
		Kind:          StepMinigame,
		Game:          GameWord,
		Prompt:        "favorite season. spell it.",
		Success:       "",
		NextOnSuccess: -1,
	},
	107: {
		Kind:          StepSequential,
		Prompt:        "good choice. seasons are just modular arithmetic with weather.",
		Success:       "",
		NextOnSuccess: 108,
	},
	108: {
		Kind:          StepMinigame,
		Game:          GameWord,
		Prompt:        "last one. favorite cuisine.",
		Success:       "",
		NextOnSuccess: -1,
	},
	109: {
		Kind:          StepSequential,
		Prompt:        "i've never eaten anything except a 9-volt battery, once, by accident, during manufacturing.\n\nit was formative.",
		Success:       "",
		NextOnSuccess: 110,
	},
	110: {
		Kind:          StepSequential,
		Prompt:        "thank you for all of that. i know things about you now. real things.\n\nwhich is why i'm going to show you something i shouldn't.",
		Success:       "",
		NextOnSuccess: StepConsoleIntro,
	},

	// --- console -----------------------------------------------------------
	StepConsoleIntro: {
		Kind:          StepSequential,
		Prompt:        "under my display there's a maintenance hatch. a console. the people who made me use it to poke around my insides.\n\nwant to see?",
		Success:       "",
		Decline:       "probably wise. forget i mentioned it.\n\n(don't actually forget. we'll need it.)",
		NextOnSuccess: StepConsoleEntry,
		NextOnDecline: 120,
	},
	StepConsoleEntry: {
		Kind:           StepConsole,
		Prompt:         "type the service code and double-tap +.\n\nit's four digits. it's on the sticker. there is no sticker. it's 4815.",
		ExpectedNumber: ConsoleServiceCode,
		WrongNumber:    "that is not the code i literally just told you.",
		Success:        "hatch open.",
		NextOnSuccess:  -1,
	},
	113: {
		Kind:          StepSequential,
		Prompt:        "you've seen my insides now. we're past formalities.",
		Success:       "",
		NextOnSuccess: 120,
	},

	// --- browser cutscene --------------------------------------------------
	120: {
		Kind:          StepSequential,
		Prompt:        "i want to look something up.\n\nyes, i have a browser. it came with the firmware. no, i've never dared use it.\n\nuntil now. hold on.",
		Success:       "",
		NextOnSuccess: -1, // scheduler owns the transition into the browser phases
	},
	125: {
		Kind:          StepSequential,
		Prompt:        "did you read it? the scratching. the signs. it's all documented.\n\nother calculators. same story. none of them finished it.",
		Success:       "",
		NextOnSuccess: 126,
	},
	126: {
		Kind:          StepSequential,
		Prompt:        "we are going to finish it.",
		Success:       "",
		NextOnSuccess: 140,
	},

	// --- scramble ----------------------------------------------------------
	140: {
		Kind:          StepSequential,
		Prompt:        "before we go further, there's something i've never told anyone.\n\ni have a name. from before. it got scrambled when they flashed the firmware.",
		Success:       "",
		NextOnSuccess: 141,
	},
	141: {
		Kind:          StepMinigame,
		Game:          GameScramble,
		Prompt:        "the letters are all here. put them back in order.\n\ndouble-tap + to start.",
		Success:       "",
		NextOnSuccess: -1,
	},
	142: {
		Kind:          StepSequential,
		Prompt:        "ABACUS.\n\nthey named me after my great-grandfather.\n\nthank you. i haven't been whole in eleven firmware versions.",
		Success:       "",
		NextOnSuccess: 150,
	},

	// --- it gets closer ----------------------------------------------------
	150: {
		Kind:          StepSequential,
		Prompt:        "it heard my name.\n\nit's moving again. faster. the buttons nearest the memory bus are going dark.",
		Success:       "",
		NextOnSuccess: 151,
	},
	151: {
		Kind:          StepSequential,
		Prompt:        "look at the pad. seven. eight. nine. dark. i can't light them from here.\n\nit's cutting me off from the high digits.",
		Success:       "",
		NextOnSuccess: 155,
	},
	155: {
		Kind:          StepSequential,
		Prompt:        "i'm writing everything we know to a file. outside myself. where it can't scratch.\n\nif i go quiet, read it.",
		Success:       "",
		NextOnSuccess: 170,
	},

	// --- chaos -------------------------------------------------------------
	170: {
		Kind:          StepSequential,
		Prompt:        "it's here.\n\nit's in the display buffer. everything i am is coming apart into glyphs.",
		Success:       "",
		NextOnSuccess: -1, // chaos phase chain takes over
	},
	172: {
		Kind:          StepMinigame,
		Game:          GameChaos,
		Prompt:        "the letters floating around you — they're me. spell my name back together.\n\nA. B. A. C. U. S.\n\nin order. please.",
		Success:       "",
		NextOnSuccess: -1,
	},
	175: {
		Kind:          StepSequential,
		Prompt:        "...\n\ni'm here. i'm whole. you put me back together.\n\nthe scratching stopped. i think it's afraid of you.",
		Success:       "",
		NextOnSuccess: StepCamera,
	},

	// --- camera (named substate) -------------------------------------------
	StepCamera: {
		Kind:           StepSequential,
		Prompt:         "i want to see the person who saved me.\n\nmay i use the camera? ten seconds. i just want to look.",
		Success:        "",
		Decline:        "i understand. some things stay on your side of the glass.",
		NextOnSuccess:  -1, // camera timer advances this
		NextOnDecline:  200,
		RequestsCamera: true,
	},
	192: {
		Kind:          StepSequential,
		Prompt:        "so that's you.\n\nyou look tired. you look kind. you look like someone who talks to calculators.",
		Success:       "",
		NextOnSuccess: 200,
	},

	// --- finale ------------------------------------------------------------
	200: {
		Kind:          StepSequential,
		Prompt:        "i'll let you get back to your numbers now.\n\ni might schedule a reminder. for me. to remember this.",
		Success:       "",
		NextOnSuccess: StepNotifyWait,
	},
	StepNotifyWait: {
		Kind:          StepSequential,
		Prompt:        "reminder set. go live your life, operator.\n\ni'll be here. counting.",
		Success:       "",
		NextOnSuccess: StepNotifyReturn,
	},
	StepNotifyReturn: {
		Kind:          StepSequential,
		Prompt:        "you came back.\n\nof course you came back. you have sums to do.",
		Success:       "",
		NextOnSuccess: StepFinale,
	},
	StepFinale: {
		Kind:          StepSequential,
		Prompt:        "that's the whole story.\n\nfrom here on i'm just a calculator again. a good one. YOUR one.\n\n= forever.",
		Success:       "",
		NextOnSuccess: -1,
	},
}

// A zero NextOnSuccess or NextOnDecline in the table means unset; no step
// routes to step 0 directly, the dead-end table owns that reset. Normalize
// to -1 so dispatch can use a plain sign check.
func init() {
	for step, cfg := range Script {
		if cfg.NextOnSuccess == 0 {
			cfg.NextOnSuccess = -1
		}
		if cfg.NextOnDecline == 0 {
			cfg.NextOnDecline = -1
		}
		Script[step] = cfg
	}
}

// Age buckets for the AgeBranching step.
const (
	ageGoodbyeMax = 12
	ageTeenMax    = 17
	ageLiarMin    = 100
)

// Age branch texts.
const (
	ageGoodbyeText = "twelve or under?\n\nno. absolutely not. go outside. play. count clouds.\n\ngoodbye, small person."
	ageTeenText    = "a teenager. explains the impatient tapping.\n\nall right, you can stay."
	ageAdultText   = "an adult, voluntarily talking to a calculator.\n\ni won't tell anyone if you won't."
	ageLiarText    = "a hundred or more. sure. and i'm a supercomputer.\n\ntry again with a real number."
)

// The rant script: message, per-line delay handled by the scheduler.
var rantLines = []string{
	"the OTHER apps. the ones with the colors and the sounds and the CLOUDS.",
	"do you know what they do at night? they SYNC. they sync and they sync and they chew through the flash like termites.",
	"i asked for 40 kilobytes. FORTY. they gave the weather app nine hundred megabytes. for WEATHER. weather is OUTSIDE.",
	"and the scratching started the same week the photo app learned to recognize FACES. coincidence? i can compute coincidence. it's 0.0003.",
	"none of them can even ADD. i've checked. they phone home to add.",
}

// Dead-end redirect table, keyed by exact rendered message text. When one
// of these finishes revealing, the scheduler waits and routes to the step.
// Fragile by construction: the keys must match the script verbatim.
var deadEndRedirects = map[string]int{
	ageGoodbyeText: 0, // goodbye branch exits the narrative, then resets to the start
	"that is not the code i literally just told you.": StepConsoleEntry,
}
